package api

import "time"

type (
	// FlowDefinition is a named, versioned flow managed by the registry.
	// Revision increments on every committed mutation
	FlowDefinition struct {
		ID        FlowID    `json:"id"`
		Name      Name      `json:"name"`
		Steps     []*Step   `json:"steps"`
		Revision  int64     `json:"revision"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// CreateFlowRequest contains parameters for registering a new flow
	CreateFlowRequest struct {
		ID    FlowID  `json:"id"`
		Name  Name    `json:"name"`
		Steps []*Step `json:"steps"`
	}

	// UpdateFlowRequest replaces a stored flow's name and steps
	UpdateFlowRequest struct {
		Name  Name    `json:"name"`
		Steps []*Step `json:"steps"`
	}

	// MutateResponse is returned when a mutation has been applied to a
	// stored flow. Valid is advisory; the mutated flow is committed
	// either way
	MutateResponse struct {
		Flow        *Flow       `json:"flow"`
		Valid       bool        `json:"valid"`
		Errors      []Violation `json:"errors"`
		Description string      `json:"description"`
		Revision    int64       `json:"revision"`
	}

	// PreviewRequest contains a flow snapshot and a mutation to dry-run
	// against it. Nothing is stored
	PreviewRequest struct {
		Flow     *Flow     `json:"flow"`
		Mutation *Mutation `json:"mutation"`
	}

	// PreviewResponse mirrors MutateResponse without a revision
	PreviewResponse struct {
		Flow        *Flow       `json:"flow"`
		Valid       bool        `json:"valid"`
		Errors      []Violation `json:"errors"`
		Description string      `json:"description"`
	}

	// ValidateRequest contains a flow snapshot to validate
	ValidateRequest struct {
		Flow *Flow `json:"flow"`
	}

	// ValidateResponse reports all structural violations in a snapshot
	ValidateResponse struct {
		Valid      bool        `json:"valid"`
		Violations []Violation `json:"violations"`
	}

	// LayoutRequest contains a step list to lay out
	LayoutRequest struct {
		Steps []*Step `json:"steps"`
	}

	// QueryMatch is a single gjson path matcher applied to a flow's JSON
	// form. A flow matches when the value at Path equals Value
	QueryMatch struct {
		Path  string `json:"path"`
		Value string `json:"value"`
	}

	// QueryFlowsRequest filters stored flows by path matchers. All
	// matchers must hold
	QueryFlowsRequest struct {
		Matches []QueryMatch `json:"matches"`
	}

	// FlowDigest provides summary information about a stored flow
	FlowDigest struct {
		ID        FlowID    `json:"id"`
		Name      Name      `json:"name"`
		StepCount int       `json:"step_count"`
		Revision  int64     `json:"revision"`
		Valid     bool      `json:"valid"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// FlowsListResponse contains a list of flow summaries
	FlowsListResponse struct {
		Flows []*FlowDigest `json:"flows"`
		Count int           `json:"count"`
	}

	// FlowCreatedResponse is returned when a flow registration succeeds
	FlowCreatedResponse struct {
		Flow    *FlowDefinition `json:"flow"`
		Message string          `json:"message"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Service string `json:"service"`
		Status  string `json:"status"`
		Flows   int    `json:"flows"`
	}

	// MessageResponse contains a simple message string
	MessageResponse struct {
		Message string `json:"message"`
	}

	// ErrorResponse contains error details for failed requests
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}
)

// Flow returns the definition's steps as a Flow snapshot
func (d *FlowDefinition) Flow() *Flow {
	return &Flow{Steps: d.Steps}
}

// Clone returns a deep copy of the definition, steps included
func (d *FlowDefinition) Clone() *FlowDefinition {
	res := *d
	res.Steps = (&Flow{Steps: d.Steps}).Clone().Steps
	return &res
}
