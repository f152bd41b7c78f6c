// Package engine identifies the Flowboard editing service
package engine

const (
	// Name is the service name reported in logs and health checks
	Name = "flowboard"

	// Version is the service version reported in logs
	Version = "0.1.0"
)
