package server_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowboard/engine/internal/registry"
	"github.com/flowboard/engine/internal/server"
	"github.com/flowboard/engine/pkg/api"
)

type testWebSocketEnv struct {
	Registry *registry.Registry
	Server   *httptest.Server
	Conn     *websocket.Conn
}

const wsReadTimeout = 500 * time.Millisecond

func testWebSocket(t *testing.T) *testWebSocketEnv {
	t.Helper()

	reg := registry.New(16)
	srv := server.NewServer(reg)
	ts := httptest.NewServer(srv.SetupRoutes())

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.CloseWebSockets()
		ts.Close()
		reg.Close()
	})
	return &testWebSocketEnv{Registry: reg, Server: ts, Conn: conn}
}

func TestSocketIdle(t *testing.T) {
	env := testWebSocket(t)

	_ = env.Conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := env.Conn.ReadMessage()
	assert.Error(t, err)
}

func TestClientReceivesEditEvents(t *testing.T) {
	env := testWebSocket(t)

	_, err := env.Registry.Create(&api.CreateFlowRequest{
		ID:   "orders",
		Name: "Orders",
	})
	require.NoError(t, err)

	_ = env.Conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	var ev api.EditEvent
	require.NoError(t, env.Conn.ReadJSON(&ev))

	assert.Equal(t, api.EventFlowCreated, ev.Type)
	assert.EqualValues(t, "orders", ev.FlowID)
	assert.Equal(t, int64(1), ev.Revision)
	assert.True(t, ev.Valid)
}

func TestClientSubscriptionFilters(t *testing.T) {
	env := testWebSocket(t)

	require.NoError(t, env.Conn.WriteJSON(api.ClientSubscription{
		FlowIDs: []api.FlowID{"billing"},
	}))

	// Give the read pump a moment to install the subscription
	time.Sleep(50 * time.Millisecond)

	_, err := env.Registry.Create(&api.CreateFlowRequest{ID: "orders"})
	require.NoError(t, err)
	_, err = env.Registry.Create(&api.CreateFlowRequest{ID: "billing"})
	require.NoError(t, err)

	_ = env.Conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	var ev api.EditEvent
	require.NoError(t, env.Conn.ReadJSON(&ev))

	assert.EqualValues(t, "billing", ev.FlowID)
}

func TestClientInvalidSubscription(t *testing.T) {
	env := testWebSocket(t)

	err := env.Conn.WriteMessage(
		websocket.TextMessage, []byte("invalid json"),
	)
	require.NoError(t, err)

	// The server drops the connection on a malformed message
	_ = env.Conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	_, _, err = env.Conn.ReadMessage()
	assert.Error(t, err)
}
