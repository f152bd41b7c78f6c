// Package builder provides a fluent API for constructing flow snapshots
//
// The builder package offers immutable step and flow builders used by
// SDK consumers and tests to assemble flows without hand-writing step
// slices
package builder
