package api

import "slices"

type (
	// Step is one node in a flow graph. DependsOn lists the IDs of the
	// step's direct predecessors, in the order the author supplied them
	Step struct {
		ID        StepID   `json:"id"`
		Name      Name     `json:"name"`
		Type      StepType `json:"type,omitempty"`
		DependsOn []StepID `json:"depends_on"`
	}

	// StepPatch carries the optional fields of an update-step mutation.
	// Nil fields are left untouched by the merge
	StepPatch struct {
		Name *Name     `json:"name,omitempty"`
		Type *StepType `json:"type,omitempty"`
	}
)

// Clone returns a deep copy of the step, including its DependsOn slice
func (s *Step) Clone() *Step {
	res := *s
	res.DependsOn = slices.Clone(s.DependsOn)
	return &res
}

// DependsOnStep reports whether the step lists the given ID as a direct
// predecessor
func (s *Step) DependsOnStep(id StepID) bool {
	return slices.Contains(s.DependsOn, id)
}

// IsRoot reports whether the step has no predecessors
func (s *Step) IsRoot() bool {
	return len(s.DependsOn) == 0
}

// Equal performs a deep structural comparison of two steps
func (s *Step) Equal(other *Step) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID &&
		s.Name == other.Name &&
		s.Type == other.Type &&
		slices.Equal(s.DependsOn, other.DependsOn)
}
