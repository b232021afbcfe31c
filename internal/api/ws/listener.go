package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/plannyhq/planny/internal/kanban"
)

// writeTimeout bounds one event delivery so a stalled peer cannot hold a
// fan-out slot indefinitely.
const writeTimeout = 5 * time.Second

// client adapts one websocket connection to kanban.Listener. Write failures
// are reported as transport failures so the fan-out prunes the handle.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn

	mu sync.Mutex // serializes writes from concurrent fan-outs
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.New(),
		conn: conn,
	}
}

func (c *client) Deliver(ctx context.Context, ev kanban.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("ws.client.Deliver: marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return fmt.Errorf("ws.client.Deliver: write to %s: %v: %w", c.id, err, kanban.ErrUnreachable)
	}

	return nil
}
