package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowboard/engine/internal/registry"
	"github.com/flowboard/engine/pkg/api"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON request")
	ErrCreateFlow  = errors.New("failed to create flow")
	ErrUpdateFlow  = errors.New("failed to update flow")
)

func (s *Server) listFlows(c *gin.Context) {
	flows := s.registry.List()
	c.JSON(http.StatusOK, api.FlowsListResponse{
		Flows: flows,
		Count: len(flows),
	})
}

func (s *Server) createFlow(c *gin.Context) {
	var req api.CreateFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	def, err := s.registry.Create(&req)
	if err == nil {
		c.JSON(http.StatusCreated, api.FlowCreatedResponse{
			Flow:    def,
			Message: "Flow created",
		})
		return
	}

	if errors.Is(err, registry.ErrFlowExists) {
		c.JSON(http.StatusConflict, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", err.Error(), req.ID),
			Status: http.StatusConflict,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{
		Error:  fmt.Sprintf("%s: %v", ErrCreateFlow, err),
		Status: http.StatusInternalServerError,
	})
}

func (s *Server) getFlow(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	def, err := s.registry.Get(flowID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", err.Error(), flowID),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, def)
}

func (s *Server) updateFlow(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	var req api.UpdateFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	def, err := s.registry.Update(flowID, &req)
	if err == nil {
		c.JSON(http.StatusOK, def)
		return
	}

	if errors.Is(err, registry.ErrFlowNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", err.Error(), flowID),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{
		Error:  fmt.Sprintf("%s: %v", ErrUpdateFlow, err),
		Status: http.StatusInternalServerError,
	})
}

func (s *Server) deleteFlow(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	if err := s.registry.Delete(flowID); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", err.Error(), flowID),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{
		Message: "Flow deleted",
	})
}

func (s *Server) queryFlows(c *gin.Context) {
	var req api.QueryFlowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	flows := s.registry.Query(req.Matches)
	c.JSON(http.StatusOK, api.FlowsListResponse{
		Flows: flows,
		Count: len(flows),
	})
}
