package api

import (
	"slices"
	"time"
)

type (
	// EventType identifies a registry edit event
	EventType string

	// EditEvent is published by the registry whenever a stored flow
	// changes, and streamed to WebSocket clients
	EditEvent struct {
		Type        EventType `json:"type"`
		FlowID      FlowID    `json:"flow_id"`
		Revision    int64     `json:"revision"`
		Description string    `json:"description,omitempty"`
		Valid       bool      `json:"valid"`
		Timestamp   time.Time `json:"timestamp"`
	}

	// ClientSubscription configures which edit events a WebSocket client
	// receives. An empty FlowIDs list subscribes to all flows
	ClientSubscription struct {
		FlowIDs    []FlowID    `json:"flow_ids,omitempty"`
		EventTypes []EventType `json:"event_types,omitempty"`
	}
)

const (
	EventFlowCreated EventType = "flow-created"
	EventFlowUpdated EventType = "flow-updated"
	EventFlowMutated EventType = "flow-mutated"
	EventFlowDeleted EventType = "flow-deleted"
)

// Wants reports whether the subscription selects the given event
func (s *ClientSubscription) Wants(ev *EditEvent) bool {
	if len(s.FlowIDs) > 0 && !slices.Contains(s.FlowIDs, ev.FlowID) {
		return false
	}
	if len(s.EventTypes) > 0 && !slices.Contains(s.EventTypes, ev.Type) {
		return false
	}
	return true
}
