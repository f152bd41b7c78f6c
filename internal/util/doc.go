// Package util provides common utility data structures
//
// This package includes the generic set implementation used by the
// validator, layout engine, and server
package util
