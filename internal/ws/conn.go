package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"codesync/internal/models"
)

// Conn wraps a websocket connection with a transport-assigned id and
// serialized writes.
type Conn struct {
	ID   string
	sock *websocket.Conn
	mu   sync.Mutex
	hook func(models.Frame)
}

func NewConn(sock *websocket.Conn) *Conn {
	return &Conn{ID: uuid.NewString(), sock: sock}
}

// SetEmitHook replaces the websocket writer (used in tests).
func (c *Conn) SetEmitHook(fn func(models.Frame)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

// Emit writes one event frame to the connection. Write errors are dropped:
// a failing connection is torn down by its own read loop.
func (c *Conn) Emit(event string, payload any) {
	frame := models.Frame{Event: event, Data: payload}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		c.hook(frame)
		return
	}
	if c.sock == nil {
		return
	}
	_ = c.sock.WriteJSON(frame)
}
