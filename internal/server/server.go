// Package server implements the HTTP API for the flow editing service
//
// This package provides REST endpoints for managing flow definitions,
// applying mutations, validating snapshots, computing layouts, and
// streaming edit events over WebSocket
package server

import (
	"log/slog"
	"net/http"
	"sync"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	"github.com/flowboard/engine/internal/registry"
	"github.com/flowboard/engine/internal/util"
)

// Server implements the HTTP API server for the flow editor
type Server struct {
	registry *registry.Registry
	sockets  util.Set[*Client]
	mu       sync.Mutex
}

// NewServer creates a new HTTP API server over the given registry
func NewServer(reg *registry.Registry) *Server {
	return &Server{
		registry: reg,
		sockets:  util.Set[*Client]{},
	}
}

// SetupRoutes configures and returns the HTTP router with all API
// endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods",
			"GET, POST, PUT, DELETE, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", s.handleHealth)

	// Flow definition endpoints
	router.GET("/flow", s.listFlows)
	router.POST("/flow", s.createFlow)
	router.POST("/flow/query", s.queryFlows)
	router.POST("/flow/preview", s.previewMutation)
	router.POST("/flow/validate", s.validateFlow)
	router.GET("/flow/:flowID", s.getFlow)
	router.PUT("/flow/:flowID", s.updateFlow)
	router.DELETE("/flow/:flowID", s.deleteFlow)

	// Editing and layout
	router.POST("/flow/:flowID/mutate", s.mutateFlow)
	router.GET("/flow/:flowID/layout", s.getFlowLayout)
	router.POST("/layout", s.computeLayout)

	// WebSocket
	router.GET("/ws", s.handleWebSocket)

	return router
}
