package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 8
	pingInterval = 30 * time.Second
	writeWait    = 5 * time.Second
)

// Event is the payload pushed to every connected client whenever the number
// of pending orders changes.
type Event struct {
	PendingCount int64 `json:"pendingCount"`
}

// Notifier is what the order flow depends on; the websocket hub implements it.
type Notifier interface {
	BroadcastPendingCount(count int64)
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans an Event out to every connected websocket. Delivery is
// best-effort: a client whose buffer is full simply misses that event, and a
// broken connection is dropped on its next read or write.
type Hub struct {
	log *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

func (h *Hub) BroadcastPendingCount(count int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- Event{PendingCount: count}:
		default:
			// full buffer, client misses this event
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Handle registers conn and blocks until the client goes away. The read loop
// runs in the calling goroutine; writes and pings happen in a second one so a
// stalled peer never backs up into the broadcaster.
func (h *Hub) Handle(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan Event, sendBuffer)}
	h.add(c)
	defer h.remove(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-c.send:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					h.log.Warn("websocket write failed", "error", err)
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	conn.Close()
	h.remove(c)
	<-done
}
