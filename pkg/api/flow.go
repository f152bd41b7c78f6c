package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// Flow is an ordered collection of steps forming a DAG via DependsOn.
// Slice order is insertion order only; it carries no topological meaning
type Flow struct {
	Steps []*Step `json:"steps"`
}

var ErrMarshalFlow = errors.New("failed to marshal flow")

// GetStep returns the step with the given ID, or nil if absent
func (f *Flow) GetStep(id StepID) *Step {
	for _, s := range f.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of the flow. Every step and its DependsOn
// slice is copied, so mutating the result never touches the original
func (f *Flow) Clone() *Flow {
	steps := make([]*Step, len(f.Steps))
	for i, s := range f.Steps {
		steps[i] = s.Clone()
	}
	return &Flow{Steps: steps}
}

// Equal performs a deep structural comparison of two flows, including
// step order
func (f *Flow) Equal(other *Flow) bool {
	if len(f.Steps) != len(other.Steps) {
		return false
	}
	for i, s := range f.Steps {
		if !s.Equal(other.Steps[i]) {
			return false
		}
	}
	return true
}

// Dependents builds the forward adjacency map: predecessor ID to the IDs
// of the steps that depend on it, in flow order
func (f *Flow) Dependents() map[StepID][]StepID {
	res := make(map[StepID][]StepID, len(f.Steps))
	for _, s := range f.Steps {
		for _, dep := range s.DependsOn {
			res[dep] = append(res[dep], s.ID)
		}
	}
	return res
}

// InDegrees maps each step ID to the number of its DependsOn entries
func (f *Flow) InDegrees() map[StepID]int {
	res := make(map[StepID]int, len(f.Steps))
	for _, s := range f.Steps {
		res[s.ID] = len(s.DependsOn)
	}
	return res
}

// Roots returns the IDs of all steps with no predecessors, in flow order
func (f *Flow) Roots() []StepID {
	var res []StepID
	for _, s := range f.Steps {
		if s.IsRoot() {
			res = append(res, s.ID)
		}
	}
	return res
}

// HashKey computes a deterministic SHA256 hash key of the flow's steps
// and their dependencies. Returns a hex string (64 chars) suitable for
// use as a cache key
func (f *Flow) HashKey() (string, error) {
	return HashSteps(f.Steps)
}

// HashSteps computes a deterministic SHA256 hash key over an ordered
// step list. Structurally identical lists always hash identically
func HashSteps(steps []*Step) (string, error) {
	data, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarshalFlow, err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
