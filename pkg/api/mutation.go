package api

import (
	"errors"
	"fmt"
)

type (
	// MutationType discriminates the variants of a Mutation
	MutationType string

	// Mutation is a tagged transformation of a flow. Type selects the
	// variant; only the fields belonging to that variant are consulted.
	// Malformed mutations (unknown type, missing variant payload) are
	// contract errors surfaced by Validate, not data errors
	Mutation struct {
		Type        MutationType `json:"type"`
		Step        *Step        `json:"step,omitempty"`
		StepID      StepID       `json:"step_id,omitempty"`
		Patch       *StepPatch   `json:"patch,omitempty"`
		From        StepID       `json:"from,omitempty"`
		To          StepID       `json:"to,omitempty"`
		StepType    StepType     `json:"step_type,omitempty"`
		DependsOn   []StepID     `json:"depends_on,omitempty"`
		Mutations   []*Mutation  `json:"mutations,omitempty"`
		Description string       `json:"description,omitempty"`
	}
)

const (
	MutationAddStep     MutationType = "add-step"
	MutationRemoveStep  MutationType = "remove-step"
	MutationUpdateStep  MutationType = "update-step"
	MutationConnect     MutationType = "connect"
	MutationDisconnect  MutationType = "disconnect"
	MutationChangeType  MutationType = "change-type"
	MutationReorderDeps MutationType = "reorder-deps"
	MutationBatch       MutationType = "batch"
)

var (
	ErrInvalidMutationType = errors.New("invalid mutation type")
	ErrMutationStepNil     = errors.New("mutation step required")
	ErrMutationStepIDEmpty = errors.New("mutation step ID required")
	ErrMutationPatchNil    = errors.New("mutation patch required")
	ErrMutationEdgeEmpty   = errors.New("mutation from and to required")
)

// AddStep creates a mutation that appends the given step verbatim
func AddStep(step *Step) *Mutation {
	return &Mutation{Type: MutationAddStep, Step: step}
}

// RemoveStep creates a mutation that deletes a step and strips its ID
// from every remaining step's dependencies
func RemoveStep(id StepID) *Mutation {
	return &Mutation{Type: MutationRemoveStep, StepID: id}
}

// UpdateStep creates a mutation that shallow-merges the patch into the
// matching step
func UpdateStep(id StepID, patch *StepPatch) *Mutation {
	return &Mutation{Type: MutationUpdateStep, StepID: id, Patch: patch}
}

// Connect creates a mutation that adds a dependency edge from one step
// to another
func Connect(from, to StepID) *Mutation {
	return &Mutation{Type: MutationConnect, From: from, To: to}
}

// Disconnect creates a mutation that removes a dependency edge
func Disconnect(from, to StepID) *Mutation {
	return &Mutation{Type: MutationDisconnect, From: from, To: to}
}

// ChangeType creates a mutation that replaces only a step's type tag
func ChangeType(id StepID, t StepType) *Mutation {
	return &Mutation{Type: MutationChangeType, StepID: id, StepType: t}
}

// ReorderDeps creates a mutation that replaces a step's DependsOn list
// wholesale
func ReorderDeps(id StepID, deps []StepID) *Mutation {
	return &Mutation{Type: MutationReorderDeps, StepID: id, DependsOn: deps}
}

// Batch creates a mutation that folds sub-mutations sequentially. The
// description overrides the default joined label when non-empty
func Batch(muts []*Mutation, description string) *Mutation {
	return &Mutation{
		Type:        MutationBatch,
		Mutations:   muts,
		Description: description,
	}
}

// Validate checks that the mutation is structurally well-formed for its
// declared type. It does not inspect the target flow
func (m *Mutation) Validate() error {
	switch m.Type {
	case MutationAddStep:
		if m.Step == nil {
			return ErrMutationStepNil
		}
	case MutationRemoveStep, MutationChangeType, MutationReorderDeps:
		if m.StepID == "" {
			return ErrMutationStepIDEmpty
		}
	case MutationUpdateStep:
		if m.StepID == "" {
			return ErrMutationStepIDEmpty
		}
		if m.Patch == nil {
			return ErrMutationPatchNil
		}
	case MutationConnect, MutationDisconnect:
		if m.From == "" || m.To == "" {
			return ErrMutationEdgeEmpty
		}
	case MutationBatch:
		for _, sub := range m.Mutations {
			if err := sub.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMutationType, m.Type)
	}
	return nil
}
