package services

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// sendQueueSize bounds the per-session outbound queue. A session that
	// falls this far behind is dropped rather than allowed to stall Publish.
	sendQueueSize = 64

	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Frame is the wire envelope for server->client and client->server messages.
type Frame struct {
	Event  string `json:"event"`
	UserID string `json:"userId,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// Session is one live realtime connection. It is joined to at most one room
// at a time.
type Session struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{ID: id, conn: conn, send: make(chan []byte, sendQueueSize)}
}

// close stops the writer; the writer closes the underlying connection.
func (s *Session) close() {
	s.once.Do(func() { close(s.send) })
}

// WritePump drains the session's queue to the websocket and keeps the
// connection alive through proxies with periodic pings. Run in its own
// goroutine; it owns all writes to the connection.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			if !ok {
				_ = s.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub routes published events to every session joined to a user's room.
// Membership mutation and the snapshot-then-enqueue step of Publish share one
// mutex, which is what preserves FIFO delivery per room.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Session]struct{}
	room  map[*Session]string
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Session]struct{}),
		room:  make(map[*Session]string),
	}
}

// Join adds the session to userID's room. A session is in at most one room;
// joining again with a different userID replaces the prior membership.
func (h *Hub) Join(s *Session, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.room[s]; ok {
		if prev == userID {
			return
		}
		h.removeLocked(s, prev)
	}
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*Session]struct{})
	}
	h.rooms[userID][s] = struct{}{}
	h.room[s] = userID
	sessionsJoined.Inc()
}

// Leave removes the session from userID's room; a no-op if it is not there.
func (h *Hub) Leave(s *Session, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.room[s] != userID {
		return
	}
	h.removeLocked(s, userID)
}

// Unregister performs the implicit leave on transport disconnect and shuts
// the session's writer down.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	if userID, ok := h.room[s]; ok {
		h.removeLocked(s, userID)
	}
	h.mu.Unlock()
	s.close()
}

func (h *Hub) removeLocked(s *Session, userID string) {
	if set := h.rooms[userID]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(h.rooms, userID)
		}
	}
	delete(h.room, s)
	sessionsJoined.Dec()
}

// Publish delivers payload to every session currently in userID's room.
// Delivery is best-effort per recipient: a session whose queue is full is
// dropped and closed rather than blocking the others. Sessions joining after
// this call never see the event; there is no replay.
func (h *Hub) Publish(userID string, payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.rooms[userID] {
		select {
		case s.send <- msg:
			eventsPublished.Inc()
		default:
			slog.Warn("realtime delivery failed, dropping session",
				"session", s.ID, "userId", userID)
			eventsDropped.Inc()
			h.removeLocked(s, userID)
			s.close()
		}
	}
	return nil
}

// RoomSize reports how many sessions are joined to userID's room.
func (h *Hub) RoomSize(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[userID])
}
