// Package coven exposes module-level metadata for the coven lineage tool.
package coven

// Version is the coven release version.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/coven"
