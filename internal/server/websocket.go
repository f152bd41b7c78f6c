package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kode4food/caravan/topic"

	"github.com/flowboard/engine/internal/util"
	"github.com/flowboard/engine/pkg/api"
	"github.com/flowboard/engine/pkg/log"
)

// Client represents a WebSocket client connection receiving edit events
type Client struct {
	conn     *websocket.Conn
	consumer topic.Consumer[*api.EditEvent]
	sub      api.ClientSubscription
	done     chan struct{}
	once     sync.Once
	subMu    sync.RWMutex
	writeMu  sync.Mutex
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	wsBufferSize   = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsBufferSize,
	WriteBufferSize: wsBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", log.Error(err))
		return
	}

	client := &Client{
		conn:     conn,
		consumer: s.registry.Subscribe(),
		done:     make(chan struct{}),
	}

	s.mu.Lock()
	s.sockets.Add(client)
	s.mu.Unlock()

	go client.writePump()
	go func() {
		client.readPump()
		s.mu.Lock()
		s.sockets.Remove(client)
		s.mu.Unlock()
		client.close()
	}()
}

// CloseWebSockets shuts down all connected clients
func (s *Server) CloseWebSockets() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.sockets {
		client.close()
	}
	s.sockets = util.Set[*Client]{}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.consumer.Close()
		_ = c.conn.Close()
	})
}

// readPump consumes subscription updates from the client until the
// connection drops
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var sub api.ClientSubscription
		if err := c.conn.ReadJSON(&sub); err != nil {
			return
		}
		c.subMu.Lock()
		c.sub = sub
		c.subMu.Unlock()
	}
}

// writePump forwards matching edit events to the client and keeps the
// connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-c.consumer.Receive():
			if !ok {
				return
			}
			if !c.wants(ev) {
				continue
			}
			if err := c.writeJSON(ev); err != nil {
				slog.Debug("WebSocket write failed", log.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.writeControl(websocket.PingMessage); err != nil {
				return
			}
		}
	}
}

func (c *Client) wants(ev *api.EditEvent) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.sub.Wants(ev)
}

func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *Client) writeControl(messageType int) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(
		messageType, nil, time.Now().Add(writeWait),
	)
}
