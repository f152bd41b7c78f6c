// Package layout computes stable 2D coordinates for flow graphs
//
// The engine assigns columns by longest-path layering, orders rows with
// a barycenter heuristic, centers nodes vertically with a two-pass
// relaxation, and materializes straight edge connectors. It is a pure
// function of its input: identical step lists always produce identical
// geometry, and malformed input (cycles, dangling references) degrades
// to a drawable layout rather than an error
package layout
