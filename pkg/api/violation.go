package api

import "fmt"

type (
	// Invariant identifies one of the structural correctness rules
	// enforced by the validator
	Invariant string

	// Violation reports a single breach of a structural invariant. The
	// message is human-readable and stable for identical input
	Violation struct {
		Invariant Invariant `json:"invariant"`
		Message   string    `json:"message"`
	}
)

const (
	// InvariantAcyclic requires the DependsOn relation to form a DAG
	InvariantAcyclic Invariant = "acyclic"

	// InvariantRootPresent requires at least one step with no
	// predecessors in a non-empty flow
	InvariantRootPresent Invariant = "root-present"

	// InvariantNoOrphans requires every step to be reachable from some
	// root by following dependency edges forward
	InvariantNoOrphans Invariant = "no-orphans"

	// InvariantUniqueIDs requires step IDs to be unique within a flow
	InvariantUniqueIDs Invariant = "unique-ids"

	// InvariantResolvableDeps requires every DependsOn entry to name an
	// existing step
	InvariantResolvableDeps Invariant = "resolvable-deps"

	// InvariantNamedSteps requires every step to carry a non-empty name
	InvariantNamedSteps Invariant = "named-steps"
)

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Invariant, v.Message)
}
