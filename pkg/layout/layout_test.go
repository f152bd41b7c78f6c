package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpers "github.com/flowboard/engine/internal/assert"
	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/layout"
)

func step(id api.StepID, deps ...api.StepID) *api.Step {
	return &api.Step{
		ID:        id,
		Name:      api.Name("Step " + id),
		DependsOn: deps,
	}
}

func centerY(t *testing.T, l *api.Layout, id api.StepID) float64 {
	t.Helper()
	node := l.Nodes[id]
	require.NotNil(t, node)
	_, y := node.Center()
	return y
}

func TestComputeEmpty(t *testing.T) {
	l := layout.Compute(nil)

	assert.Empty(t, l.Nodes)
	assert.Empty(t, l.Edges)
	assert.Zero(t, l.Width)
	assert.Zero(t, l.Height)
	assert.Zero(t, l.Columns)
	assert.Zero(t, l.MaxLaneCount)
}

func TestComputeSingleNode(t *testing.T) {
	l := layout.Compute([]*api.Step{step("a")})

	require.Len(t, l.Nodes, 1)
	node := l.Nodes["a"]
	assert.Equal(t, layout.PaddingX, node.X)
	assert.Equal(t, layout.PaddingY, node.Y)
	assert.Equal(t, 1, l.Columns)
	assert.Equal(t, 1, l.MaxLaneCount)
	assert.Equal(t,
		layout.PaddingX*2+layout.NodeWidth, l.Width)
	assert.Equal(t,
		layout.PaddingY*2+layout.NodeHeight, l.Height)
}

func TestComputeDeterministic(t *testing.T) {
	steps := []*api.Step{
		step("a"),
		step("b", "a"),
		step("c", "a"),
		step("d", "b", "c"),
		step("e", "d"),
		step("island"),
	}

	first := layout.Compute(steps)
	second := layout.Compute(steps)
	assert.Equal(t, first, second)
}

func TestComputeLayeringInvariant(t *testing.T) {
	as := helpers.New(t)
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a"),
		step("c", "a"),
		step("d", "b", "c"),
	})

	as.NodeColumn(l, "a", 0)
	as.NodeColumn(l, "b", 1)
	as.NodeColumn(l, "c", 1)
	as.NodeColumn(l, "d", 2)
}

func TestComputeLongestPathLayering(t *testing.T) {
	as := helpers.New(t)

	// d joins a short path (a) and a long one (a -> b -> c); it must
	// land strictly after the deepest parent
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a"),
		step("c", "b"),
		step("d", "a", "c"),
	})
	as.NodeColumn(l, "d", 3)
}

func TestComputeFanOutCentering(t *testing.T) {
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b1", "a"),
		step("b2", "a"),
	})

	mean := (centerY(t, l, "b1") + centerY(t, l, "b2")) / 2
	assert.Equal(t, centerY(t, l, "a"), mean)
}

func TestComputeDiamond(t *testing.T) {
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a"),
		step("c", "a"),
		step("d", "b", "c"),
	})

	assert.Equal(t, 3, l.Columns)
	assert.Len(t, l.Edges, 4)
	assert.Equal(t, 2, l.MaxLaneCount)

	// d sits exactly between its two parents
	mean := (centerY(t, l, "b") + centerY(t, l, "c")) / 2
	assert.Equal(t, centerY(t, l, "d"), mean)
	assert.Equal(t, centerY(t, l, "a"), centerY(t, l, "d"))
}

func TestComputeTopPadding(t *testing.T) {
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b1", "a"),
		step("b2", "a"),
	})

	minY := l.Height
	for _, n := range l.Nodes {
		if n.Y < minY {
			minY = n.Y
		}
	}
	assert.Equal(t, layout.PaddingY, minY)
}

func TestComputeBarycenterTieBreak(t *testing.T) {
	// c2 and c4 share barycenter 0; input order must decide their rows
	l := layout.Compute([]*api.Step{
		step("p1"),
		step("p2"),
		step("c1", "p2"),
		step("c2", "p1"),
		step("c3", "p1", "p2"),
		step("c4", "p1"),
	})

	assert.Equal(t, 0, l.Nodes["c2"].Row)
	assert.Equal(t, 1, l.Nodes["c4"].Row)
	assert.Equal(t, 2, l.Nodes["c3"].Row)
	assert.Equal(t, 3, l.Nodes["c1"].Row)
}

func TestComputeDisconnectedNodes(t *testing.T) {
	as := helpers.New(t)
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a"),
		step("island"),
	})

	as.NodeColumn(l, "island", 0)
	assert.Equal(t, 2, l.MaxLaneCount)
}

func TestComputeCyclicInput(t *testing.T) {
	as := helpers.New(t)

	// A pure cycle never reaches the sweep; both nodes degrade to
	// column 0 and the call still returns
	l := layout.Compute([]*api.Step{
		step("x", "y"),
		step("y", "x"),
	})

	as.NodeColumn(l, "x", 0)
	as.NodeColumn(l, "y", 0)
	assert.Equal(t, 1, l.Columns)
	assert.Len(t, l.Edges, 2)
	assert.NotEqual(t, l.Nodes["x"].Y, l.Nodes["y"].Y)
}

func TestComputeDanglingReference(t *testing.T) {
	as := helpers.New(t)
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a", "ghost"),
	})

	// The missing predecessor contributes no edge and no column shift
	as.NodeColumn(l, "b", 1)
	require.Len(t, l.Edges, 1)
	assert.Equal(t, api.StepID("a"), l.Edges[0].FromID)
}

func TestComputeEdgeEndpoints(t *testing.T) {
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a"),
	})

	require.Len(t, l.Edges, 1)
	edge := l.Edges[0]
	from, to := l.Nodes["a"], l.Nodes["b"]

	assert.Equal(t, from.X+from.Width, edge.FromX)
	assert.Equal(t, from.Y+from.Height/2, edge.FromY)
	assert.Equal(t, to.X, edge.ToX)
	assert.Equal(t, to.Y+to.Height/2, edge.ToY)
}

func TestComputeSizing(t *testing.T) {
	l := layout.Compute([]*api.Step{
		step("a"),
		step("b", "a"),
		step("c", "a"),
		step("d", "b", "c"),
	})

	assert.Equal(t,
		layout.PaddingX*2+3*layout.NodeWidth+2*layout.ColumnGap,
		l.Width)

	maxBottom := 0.0
	for _, n := range l.Nodes {
		if bottom := n.Y + n.Height; bottom > maxBottom {
			maxBottom = bottom
		}
	}
	assert.Equal(t, maxBottom+layout.PaddingY, l.Height)
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	steps := []*api.Step{
		step("a"),
		step("b", "a"),
	}
	snapshot := (&api.Flow{Steps: steps}).Clone()

	layout.Compute(steps)
	assert.True(t, (&api.Flow{Steps: steps}).Equal(snapshot))
}
