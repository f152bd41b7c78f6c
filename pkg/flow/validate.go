package flow

import (
	"fmt"

	"github.com/flowboard/engine/internal/util"
	"github.com/flowboard/engine/pkg/api"
)

// checker accumulates violations over a single flow snapshot. All
// traversals are iterative; the step count bounds every loop
type checker struct {
	flow       *api.Flow
	ids        util.Set[api.StepID]
	unvisited  util.Set[api.StepID]
	violations []api.Violation
}

// Validate checks every structural invariant over the flow and returns
// all violations found. It never mutates its input and never fails
// fast; a single call surfaces everything that is wrong. An empty flow
// is valid
func Validate(f *api.Flow) []api.Violation {
	c := &checker{
		flow: f,
		ids:  util.Set[api.StepID]{},
	}
	for _, s := range f.Steps {
		c.ids.Add(s.ID)
	}

	c.checkUniqueIDs()
	c.checkNames()
	c.checkResolvableDeps()
	c.checkAcyclic()
	c.checkRootPresent()
	c.checkReachability()
	return c.violations
}

func (c *checker) report(inv api.Invariant, format string, args ...any) {
	c.violations = append(c.violations, api.Violation{
		Invariant: inv,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (c *checker) checkUniqueIDs() {
	seen := util.Set[api.StepID]{}
	for _, s := range c.flow.Steps {
		if seen.Contains(s.ID) {
			c.report(api.InvariantUniqueIDs,
				"duplicate step ID %q", s.ID)
			continue
		}
		seen.Add(s.ID)
	}
}

func (c *checker) checkNames() {
	for _, s := range c.flow.Steps {
		if s.Name == "" {
			c.report(api.InvariantNamedSteps,
				"step %q has an empty name", s.ID)
		}
	}
}

func (c *checker) checkResolvableDeps() {
	for _, s := range c.flow.Steps {
		for _, dep := range s.DependsOn {
			if !c.ids.Contains(dep) {
				c.report(api.InvariantResolvableDeps,
					"step %q depends on unknown step %q", s.ID, dep)
			}
		}
	}
}

// checkAcyclic proves the dependency relation is a DAG via an iterative
// Kahn sweep. Only edges that resolve to existing steps participate;
// dangling references are the resolvable-deps invariant's concern and
// must not masquerade as cycles. Steps the sweep never reaches are the
// cycle-involved remainder
func (c *checker) checkAcyclic() {
	inDegree := make(map[api.StepID]int, len(c.flow.Steps))
	for _, s := range c.flow.Steps {
		for _, dep := range s.DependsOn {
			if c.ids.Contains(dep) {
				inDegree[s.ID]++
			}
		}
	}

	dependents := c.flow.Dependents()

	var queue []api.StepID
	for _, s := range c.flow.Steps {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
		}
	}

	visited := util.Set[api.StepID]{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited.Contains(id) {
			continue
		}
		visited.Add(id)

		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	// Compare against distinct IDs so duplicate step IDs, already the
	// unique-ids invariant's concern, cannot masquerade as a cycle
	c.unvisited = util.Set[api.StepID]{}
	if visited.Len() == c.ids.Len() {
		return
	}
	var cycle []api.StepID
	for _, s := range c.flow.Steps {
		if !visited.Contains(s.ID) {
			c.unvisited.Add(s.ID)
			cycle = append(cycle, s.ID)
		}
	}
	c.report(api.InvariantAcyclic,
		"dependency cycle involving steps %v", cycle)
}

// checkRootPresent flags a rootless non-empty flow. Suppressed when a
// cycle was found: the cycle is what consumed the would-be roots, and
// one violation per defect is enough
func (c *checker) checkRootPresent() {
	if len(c.flow.Steps) == 0 || !c.unvisited.IsEmpty() {
		return
	}
	if len(c.flow.Roots()) == 0 {
		c.report(api.InvariantRootPresent,
			"flow has no root step")
	}
}

// checkReachability walks forward from every root along dependency
// edges and flags steps the walk never reaches. Cycle-involved steps
// are left to the acyclic check
func (c *checker) checkReachability() {
	if len(c.flow.Steps) == 0 {
		return
	}

	dependents := c.flow.Dependents()
	queue := c.flow.Roots()

	reached := util.Set[api.StepID]{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if reached.Contains(id) {
			continue
		}
		reached.Add(id)
		queue = append(queue, dependents[id]...)
	}

	for _, s := range c.flow.Steps {
		if reached.Contains(s.ID) || c.unvisited.Contains(s.ID) {
			continue
		}
		c.report(api.InvariantNoOrphans,
			"step %q is not reachable from any root", s.ID)
	}
}
