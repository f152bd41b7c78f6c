// Package assert wraps testify assertions with flow-editing helpers
package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/flow"
)

// Wrapper wraps testify assertions with Flowboard-specific helpers
type Wrapper struct {
	*testing.T
	*assert.Assertions
	Require *assert.Assertions
}

// New creates a new test assertion wrapper with both assert and require
// from testify plus Flowboard-specific helpers
func New(t *testing.T) *Wrapper {
	return &Wrapper{
		T:          t,
		Assertions: assert.New(t),
		Require:    assert.New(t),
	}
}

// FlowValid asserts that a flow passes every structural invariant
func (w *Wrapper) FlowValid(f *api.Flow) {
	w.Helper()
	w.Empty(flow.Validate(f))
}

// HasViolation asserts that the list contains at least one violation of
// the given invariant
func (w *Wrapper) HasViolation(vs []api.Violation, inv api.Invariant) {
	w.Helper()
	for _, v := range vs {
		if v.Invariant == inv {
			return
		}
	}
	w.Failf("missing violation", "expected a %s violation in %v", inv, vs)
}

// OnlyViolations asserts that the list contains exactly the given
// invariants, in any order and with no extras
func (w *Wrapper) OnlyViolations(
	vs []api.Violation, invs ...api.Invariant,
) {
	w.Helper()
	actual := make([]api.Invariant, len(vs))
	for i, v := range vs {
		actual[i] = v.Invariant
	}
	w.ElementsMatch(invs, actual)
}

// NodeColumn asserts a node's assigned column in a layout
func (w *Wrapper) NodeColumn(l *api.Layout, id api.StepID, column int) {
	w.Helper()
	node := l.Nodes[id]
	w.Require.NotNil(node)
	if node != nil {
		w.Equal(column, node.Column)
	}
}

// CenterY returns a node's vertical center, failing the test when the
// node is absent
func (w *Wrapper) CenterY(l *api.Layout, id api.StepID) float64 {
	w.Helper()
	node := l.Nodes[id]
	w.Require.NotNil(node)
	if node == nil {
		return 0
	}
	_, y := node.Center()
	return y
}
