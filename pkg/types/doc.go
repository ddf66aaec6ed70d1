// Package types defines the Vampire entity, the traversal operations over a
// vampire lineage, configuration, and the standard errors for coven.
//
// A lineage is a rooted tree. The original vampire has no creator; every
// other vampire has exactly one. Trees only grow: AddOffspring is the sole
// mutation and there is no detach.
package types
