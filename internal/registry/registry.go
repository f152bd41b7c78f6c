// Package registry maintains the in-memory catalog of flow definitions
//
// The registry is the only stateful component in the service. It owns
// the stored flows, applies mutations through the editing core, and
// publishes edit events for WebSocket streaming. Storage is memory-only
// on purpose; durable persistence belongs to an outer system
package registry

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/message"
	"github.com/kode4food/caravan/topic"
	"github.com/tidwall/gjson"

	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/flow"
	"github.com/flowboard/engine/pkg/layout"
)

// Registry stores named flow definitions and coordinates edits
type Registry struct {
	flows   map[api.FlowID]*api.FlowDefinition
	layouts *layout.Cache
	events  topic.Topic[*api.EditEvent]
	prod    topic.Producer[*api.EditEvent]
	now     func() time.Time
	mu      sync.RWMutex
}

var (
	ErrFlowExists   = errors.New("flow already exists")
	ErrFlowNotFound = errors.New("flow not found")
)

// New creates an empty registry with a layout memo cache of the given
// size
func New(layoutCacheSize int) *Registry {
	events := caravan.NewTopic[*api.EditEvent]()
	return &Registry{
		flows:   map[api.FlowID]*api.FlowDefinition{},
		layouts: layout.NewCache(layoutCacheSize),
		events:  events,
		prod:    events.NewProducer(),
		now:     time.Now,
	}
}

// Subscribe returns a consumer of edit events. The caller owns the
// consumer and must close it
func (r *Registry) Subscribe() topic.Consumer[*api.EditEvent] {
	return r.events.NewConsumer()
}

// Close releases the event producer
func (r *Registry) Close() {
	r.prod.Close()
}

// Count returns the number of stored flows
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}

// Create registers a new flow definition. A missing ID is assigned a
// UUID; a provided ID is sanitized. Structural validity is advisory
// and never blocks registration
func (r *Registry) Create(req *api.CreateFlowRequest) (
	*api.FlowDefinition, error,
) {
	id := api.SanitizeID(req.ID)
	if id == "" {
		id = api.FlowID(uuid.NewString())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flows[id]; ok {
		return nil, ErrFlowExists
	}

	now := r.now()
	def := &api.FlowDefinition{
		ID:        id,
		Name:      req.Name,
		Steps:     (&api.Flow{Steps: req.Steps}).Clone().Steps,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if def.Steps == nil {
		def.Steps = []*api.Step{}
	}
	r.flows[id] = def

	r.publish(api.EventFlowCreated, def, "")
	return def.Clone(), nil
}

// Get returns a deep copy of the stored definition
func (r *Registry) Get(id api.FlowID) (*api.FlowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	return def.Clone(), nil
}

// List returns digests of all stored flows, ordered by ID
func (r *Registry) List() []*api.FlowDigest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*api.FlowDigest, 0, len(r.flows))
	for _, def := range r.flows {
		res = append(res, digest(def))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res
}

// Update replaces a stored flow's name and steps wholesale
func (r *Registry) Update(id api.FlowID, req *api.UpdateFlowRequest) (
	*api.FlowDefinition, error,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}

	if req.Name != "" {
		def.Name = req.Name
	}
	def.Steps = (&api.Flow{Steps: req.Steps}).Clone().Steps
	if def.Steps == nil {
		def.Steps = []*api.Step{}
	}
	def.Revision++
	def.UpdatedAt = r.now()

	r.publish(api.EventFlowUpdated, def, "")
	return def.Clone(), nil
}

// Delete removes a stored flow
func (r *Registry) Delete(id api.FlowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.flows[id]
	if !ok {
		return ErrFlowNotFound
	}
	delete(r.flows, id)

	r.publish(api.EventFlowDeleted, def, "")
	return nil
}

// Mutate applies a mutation to a stored flow through the editing core
// and commits the result whether or not it is structurally valid; the
// report lets the caller warn or revert. The returned revision reflects
// the committed state
func (r *Registry) Mutate(id api.FlowID, m *api.Mutation) (
	*flow.Result, int64, error,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.flows[id]
	if !ok {
		return nil, 0, ErrFlowNotFound
	}

	result, err := flow.Apply(def.Flow(), m)
	if err != nil {
		return nil, 0, err
	}

	def.Steps = result.Flow.Steps
	def.Revision++
	def.UpdatedAt = r.now()

	r.publish(api.EventFlowMutated, def, result.Description)
	return result, def.Revision, nil
}

// Layout computes (or recalls) the layout for a stored flow
func (r *Registry) Layout(id api.FlowID) (*api.Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	return r.layouts.Compute(def.Steps), nil
}

// Query returns digests of stored flows whose JSON form satisfies
// every path matcher
func (r *Registry) Query(matches []api.QueryMatch) []*api.FlowDigest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*api.FlowDigest
	for _, def := range r.flows {
		if matchesFlow(def, matches) {
			res = append(res, digest(def))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res
}

func matchesFlow(def *api.FlowDefinition, matches []api.QueryMatch) bool {
	data, err := json.Marshal(def)
	if err != nil {
		return false
	}
	for _, m := range matches {
		if gjson.GetBytes(data, m.Path).String() != m.Value {
			return false
		}
	}
	return true
}

func digest(def *api.FlowDefinition) *api.FlowDigest {
	return &api.FlowDigest{
		ID:        def.ID,
		Name:      def.Name,
		StepCount: len(def.Steps),
		Revision:  def.Revision,
		Valid:     len(flow.Validate(def.Flow())) == 0,
		UpdatedAt: def.UpdatedAt,
	}
}

func (r *Registry) publish(
	typ api.EventType, def *api.FlowDefinition, desc string,
) {
	message.Send(r.prod, &api.EditEvent{
		Type:        typ,
		FlowID:      def.ID,
		Revision:    def.Revision,
		Description: desc,
		Valid:       len(flow.Validate(def.Flow())) == 0,
		Timestamp:   def.UpdatedAt,
	})
}
