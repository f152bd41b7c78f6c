package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowboard/engine/pkg/api"
)

func TestSubscriptionWants(t *testing.T) {
	ev := &api.EditEvent{
		Type:   api.EventFlowMutated,
		FlowID: "orders",
	}

	tests := []struct {
		name     string
		sub      *api.ClientSubscription
		expected bool
	}{
		{"empty matches all", &api.ClientSubscription{}, true},
		{
			"matching flow",
			&api.ClientSubscription{FlowIDs: []api.FlowID{"orders"}},
			true,
		},
		{
			"other flow",
			&api.ClientSubscription{FlowIDs: []api.FlowID{"billing"}},
			false,
		},
		{
			"matching type",
			&api.ClientSubscription{
				EventTypes: []api.EventType{api.EventFlowMutated},
			},
			true,
		},
		{
			"other type",
			&api.ClientSubscription{
				EventTypes: []api.EventType{api.EventFlowDeleted},
			},
			false,
		},
		{
			"flow matches but type does not",
			&api.ClientSubscription{
				FlowIDs:    []api.FlowID{"orders"},
				EventTypes: []api.EventType{api.EventFlowCreated},
			},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.sub.Wants(ev))
		})
	}
}
