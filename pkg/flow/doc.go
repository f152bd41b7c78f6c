// Package flow implements the editing core for flow graphs
//
// This package contains the structural validator and the mutation engine.
// Both are pure: the validator never repairs what it finds, and the
// mutation engine always returns a fresh flow, leaving its input intact.
// Validation is advisory; callers decide whether to commit an invalid
// result
package flow
