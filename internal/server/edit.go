package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowboard/engine/internal/registry"
	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/flow"
)

var ErrMutationRequired = errors.New("mutation required")

func (s *Server) mutateFlow(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	var m api.Mutation
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	result, revision, err := s.registry.Mutate(flowID, &m)
	if err == nil {
		c.JSON(http.StatusOK, api.MutateResponse{
			Flow:        result.Flow,
			Valid:       result.Valid,
			Errors:      violations(result.Errors),
			Description: result.Description,
			Revision:    revision,
		})
		return
	}

	if errors.Is(err, registry.ErrFlowNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", err.Error(), flowID),
			Status: http.StatusNotFound,
		})
		return
	}

	// Malformed mutation: a contract error, not a domain error
	c.JSON(http.StatusBadRequest, api.ErrorResponse{
		Error:  err.Error(),
		Status: http.StatusBadRequest,
	})
}

func (s *Server) previewMutation(c *gin.Context) {
	var req api.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}
	if req.Mutation == nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  ErrMutationRequired.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}

	snapshot := req.Flow
	if snapshot == nil {
		snapshot = &api.Flow{}
	}

	result, err := flow.Apply(snapshot, req.Mutation)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, api.PreviewResponse{
		Flow:        result.Flow,
		Valid:       result.Valid,
		Errors:      violations(result.Errors),
		Description: result.Description,
	})
}

func (s *Server) validateFlow(c *gin.Context) {
	var req api.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	snapshot := req.Flow
	if snapshot == nil {
		snapshot = &api.Flow{}
	}

	found := flow.Validate(snapshot)
	c.JSON(http.StatusOK, api.ValidateResponse{
		Valid:      len(found) == 0,
		Violations: violations(found),
	})
}

// violations normalizes a nil slice to an empty one so JSON clients
// always see an array
func violations(vs []api.Violation) []api.Violation {
	if vs == nil {
		return []api.Violation{}
	}
	return vs
}
