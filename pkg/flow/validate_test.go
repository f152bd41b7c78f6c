package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpers "github.com/flowboard/engine/internal/assert"
	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/flow"
)

func step(id api.StepID, deps ...api.StepID) *api.Step {
	return &api.Step{
		ID:        id,
		Name:      api.Name("Step " + id),
		DependsOn: deps,
	}
}

func diamond() *api.Flow {
	return &api.Flow{
		Steps: []*api.Step{
			step("a"),
			step("b", "a"),
			step("c", "a"),
			step("d", "b", "c"),
		},
	}
}

func TestValidateEmptyFlow(t *testing.T) {
	assert.Empty(t, flow.Validate(&api.Flow{}))
}

func TestValidateDiamond(t *testing.T) {
	as := helpers.New(t)
	as.FlowValid(diamond())
}

func TestValidateIdempotent(t *testing.T) {
	f := &api.Flow{
		Steps: []*api.Step{
			step("a"),
			step("a"),
			step("b", "ghost"),
			{ID: "c", DependsOn: []api.StepID{"a"}},
		},
	}

	first := flow.Validate(f)
	second := flow.Validate(f)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestValidateDuplicateIDs(t *testing.T) {
	as := helpers.New(t)
	f := &api.Flow{
		Steps: []*api.Step{step("a"), step("a")},
	}
	as.OnlyViolations(flow.Validate(f), api.InvariantUniqueIDs)
}

func TestValidateEmptyName(t *testing.T) {
	as := helpers.New(t)
	f := &api.Flow{
		Steps: []*api.Step{{ID: "a"}},
	}
	as.OnlyViolations(flow.Validate(f), api.InvariantNamedSteps)
}

func TestValidateUnknownDependency(t *testing.T) {
	as := helpers.New(t)
	f := &api.Flow{
		Steps: []*api.Step{step("a"), step("b", "a", "ghost")},
	}

	found := flow.Validate(f)
	as.OnlyViolations(found, api.InvariantResolvableDeps)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "ghost")
}

func TestValidateNoRoot(t *testing.T) {
	as := helpers.New(t)

	// The only step depends on a missing step, so there is no root but
	// also no cycle
	f := &api.Flow{
		Steps: []*api.Step{step("a", "ghost")},
	}
	as.OnlyViolations(flow.Validate(f),
		api.InvariantRootPresent,
		api.InvariantResolvableDeps,
		api.InvariantNoOrphans,
	)
}

func TestValidateCycle(t *testing.T) {
	// Chain a -> b, then the edge b -> a closes a cycle. That one edge
	// must surface as exactly one violation
	f := &api.Flow{
		Steps: []*api.Step{
			step("a", "b"),
			step("b", "a"),
		},
	}

	found := flow.Validate(f)
	require.Len(t, found, 1)
	assert.Equal(t, api.InvariantAcyclic, found[0].Invariant)
}

func TestValidateCycleBesideValidComponent(t *testing.T) {
	as := helpers.New(t)
	f := &api.Flow{
		Steps: []*api.Step{
			step("a"),
			step("b", "a"),
			step("x", "y"),
			step("y", "x"),
		},
	}

	found := flow.Validate(f)
	as.OnlyViolations(found, api.InvariantAcyclic)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "x")
	assert.Contains(t, found[0].Message, "y")
}

func TestValidateCycleDownstreamSuppressed(t *testing.T) {
	as := helpers.New(t)

	// d hangs off the cycle; reporting it as an orphan would double up
	// on the same defect
	f := &api.Flow{
		Steps: []*api.Step{
			step("r"),
			step("x", "y"),
			step("y", "x"),
			step("d", "x"),
		},
	}
	as.OnlyViolations(flow.Validate(f), api.InvariantAcyclic)
}

func TestValidateAccumulatesAll(t *testing.T) {
	as := helpers.New(t)
	f := &api.Flow{
		Steps: []*api.Step{
			step("a"),
			step("a"),
			{ID: "b", DependsOn: []api.StepID{"ghost"}},
		},
	}
	as.OnlyViolations(flow.Validate(f),
		api.InvariantUniqueIDs,
		api.InvariantNamedSteps,
		api.InvariantResolvableDeps,
		api.InvariantNoOrphans,
	)
}

func TestValidateDoesNotMutate(t *testing.T) {
	f := &api.Flow{
		Steps: []*api.Step{step("a", "b"), step("b", "a")},
	}
	snapshot := f.Clone()
	flow.Validate(f)
	assert.True(t, f.Equal(snapshot))
}
