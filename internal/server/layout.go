package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/layout"
)

func (s *Server) getFlowLayout(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	result, err := s.registry.Layout(flowID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", err.Error(), flowID),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) computeLayout(c *gin.Context) {
	var req api.LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}
	c.JSON(http.StatusOK, layout.Compute(req.Steps))
}
