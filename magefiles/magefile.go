//go:build mage

// Package main provides build targets for the coven project using Mage.
//
// Usage:
//
//	mage build      Compile coven binary to bin/
//	mage test:all   Run all tests
//	mage test:unit  Run tests without the race detector or cache busting
//	mage test:race  Run all tests with the race detector
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install coven to GOPATH/bin
//	mage demo       Build, then run the sample lineage through every query
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "coven"
	binaryDir  = "bin"
	cmdDir     = "./cmd/coven"
)

// Build compiles the coven binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test groups test targets.
type Test mg.Namespace

// All runs every test verbosely, bypassing the test cache.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-count=1", "-v", "./...")
}

// Unit runs every test using the test cache.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Demo builds coven, initializes a throwaway config directory with the sample
// lineage, and runs each query against it.
func Demo() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "coven-demo-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(binaryDir, binaryName)
	queries := [][]string{
		{"init"},
		{"show"},
		{"generations", "Wayne"},
		{"senior", "Ansel", "Wayne"},
		{"ancestor", "Sarah", "Andrew"},
		{"find", "Wayne"},
		{"offspring", "Ansel"},
		{"descendants", "Ansel"},
		{"after"},
	}
	for _, q := range queries {
		args := append([]string{"--config-dir", dir}, q...)
		if err := sh.RunV(bin, args...); err != nil {
			return err
		}
	}
	return nil
}
