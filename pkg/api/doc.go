// Package api defines the core data types for the flow editing engine
//
// This package contains all the shared types used across the editing and
// layout surfaces, including step definitions, flow snapshots, mutations,
// structural violations, layout geometry, and HTTP messages
package api
