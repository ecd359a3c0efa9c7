package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/warbee0712/lunajoy/models"
)

// frame mirrors the server's wire envelope.
type frame struct {
	Event  string          `json:"event"`
	UserID string          `json:"userId,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Client is the realtime connection for one session. It implements
// RoomMembership so a Reconciler can drive joinRoom/leaveRoom directly.
type Client struct {
	conn *websocket.Conn

	mu   sync.Mutex // guards writes to conn
	done chan struct{}
	once sync.Once
}

// Dial connects to the server's websocket endpoint (ws:// or wss:// URL).
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// Join sends a joinRoom frame for userID.
func (c *Client) Join(userID string) error {
	return c.write(frame{Event: "joinRoom", UserID: userID})
}

// Leave sends a leaveRoom frame for userID.
func (c *Client) Leave(userID string) error {
	return c.write(frame{Event: "leaveRoom", UserID: userID})
}

func (c *Client) write(f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(f)
}

// Run reads server frames and feeds newLog events into the reconciler until
// the connection closes or Close is called. Blocking; run in a goroutine.
func (c *Client) Run(rec *Reconciler) {
	defer c.Close()
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			select {
			case <-c.done:
			default:
				slog.Info("realtime connection closed", "error", err)
			}
			return
		}

		if f.Event != "newLog" {
			continue
		}
		var event models.LogCreatedEvent
		if err := json.Unmarshal(f.Data, &event); err != nil {
			slog.Warn("malformed newLog event", "error", err)
			continue
		}
		rec.ApplyPushed(event)
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
