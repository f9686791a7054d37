package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
)

const (
	sendBuffer   = 8
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type connection struct {
	socket *websocket.Conn
	send   chan []byte
}

// WebsocketHub pushes new events to every connected dashboard. Clients
// that cannot keep up are disconnected.
type WebsocketHub struct {
	mu      sync.Mutex
	clients map[*connection]struct{}
	logger  providers.Logger
}

func NewWebsocketHub(logger providers.Logger) *WebsocketHub {
	return &WebsocketHub{
		clients: make(map[*connection]struct{}),
		logger:  logger,
	}
}

func (h *WebsocketHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf(providers.TypeGet, "websocket upgrade: %s", err)
		return
	}

	c := &connection{socket: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debugf(providers.TypeGet, "websocket client %s connected", r.RemoteAddr)

	go h.writeLoop(c)

	// inbound frames are ignored; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	h.logger.Debugf(providers.TypeGet, "websocket client %s disconnected", r.RemoteAddr)
}

func (h *WebsocketHub) Notify(_ context.Context, event *models.Event) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	var slow []*connection
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.logger.Warnf(providers.TypeApp, "dropping slow websocket client")
		h.remove(c)
	}
	return nil
}

func (h *WebsocketHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *WebsocketHub) Close() {
	h.mu.Lock()
	clients := make([]*connection, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}

// remove is the only place a send channel is closed.
func (h *WebsocketHub) remove(c *connection) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		close(c.send)
	}
}

func (h *WebsocketHub) writeLoop(c *connection) {
	defer c.socket.Close()
	for msg := range c.send {
		_ = c.socket.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.socket.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c)
			// drain so remove's close ends the loop
			for range c.send {
			}
			return
		}
	}
	_ = c.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
