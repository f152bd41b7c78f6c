package flow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/flowboard/engine/pkg/api"
)

// Result carries the outcome of a mutation: the transformed flow, an
// advisory validity report, and a deterministic audit description. The
// flow is always usable, even when invalid
type Result struct {
	Flow        *api.Flow       `json:"flow"`
	Errors      []api.Violation `json:"errors"`
	Description string          `json:"description"`
	Valid       bool            `json:"valid"`
}

// Apply runs a mutation against a flow and returns the transformed flow
// together with a post-hoc validation report. The input flow is never
// touched: steps and their DependsOn slices are deep-copied before any
// transformation. The only error is a structurally malformed mutation;
// domain problems (duplicate IDs, cycles, dangling references) are
// reported as violations while the mutated flow is still returned
func Apply(f *api.Flow, m *api.Mutation) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	next, desc := applyMutation(f.Clone(), m)
	errs := Validate(next)
	return &Result{
		Flow:        next,
		Valid:       len(errs) == 0,
		Errors:      errs,
		Description: desc,
	}, nil
}

// applyMutation transforms an already-cloned flow in place and returns
// it with the mutation's audit description. Descriptions are built only
// from input data, never from the clock or randomness
func applyMutation(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	switch m.Type {
	case api.MutationAddStep:
		return applyAddStep(f, m)
	case api.MutationRemoveStep:
		return applyRemoveStep(f, m)
	case api.MutationUpdateStep:
		return applyUpdateStep(f, m)
	case api.MutationConnect:
		return applyConnect(f, m)
	case api.MutationDisconnect:
		return applyDisconnect(f, m)
	case api.MutationChangeType:
		return applyChangeType(f, m)
	case api.MutationReorderDeps:
		return applyReorderDeps(f, m)
	case api.MutationBatch:
		return applyBatch(f, m)
	}
	// Unreachable: Validate rejects unknown types before dispatch
	return f, ""
}

// applyAddStep appends the step verbatim, dependencies included.
// Uniqueness and reference correctness are not checked eagerly; the
// post-mutation validation surfaces any damage
func applyAddStep(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	f.Steps = append(f.Steps, m.Step.Clone())
	return f, fmt.Sprintf("added step %q (%s)", m.Step.Name, m.Step.ID)
}

// applyRemoveStep deletes the step and strips its ID from every
// remaining step's dependencies, so removal can never leave a dangling
// reference. Former dependents may become unreachable; that is the
// reachability invariant's concern, not prevented here
func applyRemoveStep(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	if f.GetStep(m.StepID) == nil {
		return f, fmt.Sprintf("remove step %s: not found", m.StepID)
	}

	steps := make([]*api.Step, 0, len(f.Steps)-1)
	for _, s := range f.Steps {
		if s.ID == m.StepID {
			continue
		}
		s.DependsOn = slices.DeleteFunc(s.DependsOn,
			func(id api.StepID) bool {
				return id == m.StepID
			})
		steps = append(steps, s)
	}
	f.Steps = steps
	return f, fmt.Sprintf("removed step %s", m.StepID)
}

// applyUpdateStep shallow-merges the patch into the matching step. A
// missing ID is a descriptive no-op, not an error
func applyUpdateStep(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	step := f.GetStep(m.StepID)
	if step == nil {
		return f, fmt.Sprintf("update step %s: not found", m.StepID)
	}
	if m.Patch.Name != nil {
		step.Name = *m.Patch.Name
	}
	if m.Patch.Type != nil {
		step.Type = *m.Patch.Type
	}
	return f, fmt.Sprintf("updated step %s", m.StepID)
}

// applyConnect appends From to To's dependencies. Idempotent: an
// existing edge is left alone. Cycle detection is the validator's
// business, strictly post-hoc
func applyConnect(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	step := f.GetStep(m.To)
	if step == nil {
		return f, fmt.Sprintf("connect %s -> %s: step %s not found",
			m.From, m.To, m.To)
	}
	if !step.DependsOnStep(m.From) {
		step.DependsOn = append(step.DependsOn, m.From)
	}
	return f, fmt.Sprintf("connected %s -> %s", m.From, m.To)
}

// applyDisconnect removes From from To's dependencies, a no-op when the
// edge (or the step) is absent
func applyDisconnect(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	if step := f.GetStep(m.To); step != nil {
		step.DependsOn = slices.DeleteFunc(step.DependsOn,
			func(id api.StepID) bool {
				return id == m.From
			})
	}
	return f, fmt.Sprintf("disconnected %s -> %s", m.From, m.To)
}

// applyChangeType replaces only the step's type tag
func applyChangeType(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	step := f.GetStep(m.StepID)
	if step == nil {
		return f, fmt.Sprintf("change type of %s: not found", m.StepID)
	}
	step.Type = m.StepType
	return f, fmt.Sprintf("changed type of %s to %q", m.StepID, m.StepType)
}

// applyReorderDeps replaces the step's DependsOn list wholesale, for
// callers to whom dependency order carries meaning
func applyReorderDeps(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	step := f.GetStep(m.StepID)
	if step == nil {
		return f, fmt.Sprintf("reorder deps of %s: not found", m.StepID)
	}
	step.DependsOn = slices.Clone(m.DependsOn)
	return f, fmt.Sprintf("reordered dependencies of %s", m.StepID)
}

// applyBatch folds the sub-mutations sequentially; each output flow is
// the next input. Intermediate invalidity is allowed since only the
// final flow is validated by Apply
func applyBatch(f *api.Flow, m *api.Mutation) (*api.Flow, string) {
	descs := make([]string, 0, len(m.Mutations))
	for _, sub := range m.Mutations {
		var desc string
		f, desc = applyMutation(f, sub)
		descs = append(descs, desc)
	}
	if m.Description != "" {
		return f, m.Description
	}
	return f, strings.Join(descs, "; ")
}
