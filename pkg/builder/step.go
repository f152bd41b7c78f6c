package builder

import (
	"regexp"
	"slices"
	"strings"

	"github.com/flowboard/engine/pkg/api"
)

// Step is an immutable builder for a single flow step
type Step struct {
	id        api.StepID
	name      api.Name
	stepType  api.StepType
	dependsOn []api.StepID
}

var (
	camelCaseRegex = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	delimiterRegex = regexp.MustCompile(`[\s_]+`)
)

// NewStep creates a new step builder with the specified name. The ID
// defaults to the snake-cased name
func NewStep(name api.Name) *Step {
	return &Step{
		id:   api.StepID(toSnakeCase(string(name))),
		name: name,
	}
}

// WithID overrides the step's derived ID
func (s *Step) WithID(id api.StepID) *Step {
	res := *s
	res.id = id
	return &res
}

// WithType sets the step's opaque type tag
func (s *Step) WithType(t api.StepType) *Step {
	res := *s
	res.stepType = t
	return &res
}

// DependsOn appends predecessor step IDs, preserving order
func (s *Step) DependsOn(ids ...api.StepID) *Step {
	res := *s
	res.dependsOn = make([]api.StepID, len(s.dependsOn)+len(ids))
	copy(res.dependsOn, s.dependsOn)
	copy(res.dependsOn[len(s.dependsOn):], ids)
	return &res
}

// Build produces the step value
func (s *Step) Build() *api.Step {
	return &api.Step{
		ID:        s.id,
		Name:      s.name,
		Type:      s.stepType,
		DependsOn: slices.Clone(s.dependsOn),
	}
}

func toSnakeCase(s string) string {
	snake := camelCaseRegex.ReplaceAllString(s, "${1}_${2}")
	snake = delimiterRegex.ReplaceAllString(snake, "_")
	return strings.ToLower(snake)
}
