package builder

import "github.com/flowboard/engine/pkg/api"

// Flow is an immutable builder for assembling flow snapshots
type Flow struct {
	steps []*api.Step
}

// NewFlow creates an empty flow builder
func NewFlow() *Flow {
	return &Flow{}
}

// WithStep appends an already-built step
func (f *Flow) WithStep(step *api.Step) *Flow {
	res := *f
	res.steps = make([]*api.Step, len(f.steps)+1)
	copy(res.steps, f.steps)
	res.steps[len(f.steps)] = step
	return &res
}

// WithSteps appends several steps in order
func (f *Flow) WithSteps(steps ...*api.Step) *Flow {
	res := f
	for _, s := range steps {
		res = res.WithStep(s)
	}
	return res
}

// Step builds and appends a step from its builder
func (f *Flow) Step(s *Step) *Flow {
	return f.WithStep(s.Build())
}

// Build produces the flow snapshot with deep-copied steps
func (f *Flow) Build() *api.Flow {
	flow := &api.Flow{Steps: f.steps}
	return flow.Clone()
}
