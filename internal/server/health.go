package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/flowboard/engine"
	"github.com/flowboard/engine/pkg/api"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Service: app.Name,
		Status:  "healthy",
		Flows:   s.registry.Count(),
	})
}
