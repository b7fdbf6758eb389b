package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lanternlab/lantern/pkg/logger"
	"github.com/lanternlab/lantern/pkg/view"
)

// writeTimeout bounds every broadcast write; a stalled client times out
// and is dropped instead of holding the hub lock.
const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans derived views out to connected canvas clients over
// WebSocket. A slow or dead client is dropped rather than blocking the
// broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{clients: map[string]*websocket.Conn{}}
}

// viewMessage is the push envelope sent after every state mutation.
type viewMessage struct {
	Type string    `json:"type"`
	View view.View `json:"view"`
}

// Handler upgrades the connection and keeps it registered until the
// client disconnects. Inbound messages are ignored; the socket is a
// push channel only.
func (h *Hub) Handler(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	id, err := gonanoid.New()
	if err != nil {
		conn.Close()
		return err
	}

	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
	logger.Debug("[WS] Client connected", "client", id)

	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
		conn.Close()
		logger.Debug("[WS] Client disconnected", "client", id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// BroadcastView pushes the view to every connected client.
func (h *Hub) BroadcastView(v view.View) {
	message := viewMessage{Type: "view", View: v}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(message); err != nil {
			logger.Warn("[WS] Dropping client after failed write", "client", id, "err", err)
			conn.Close()
			delete(h.clients, id)
		}
	}
}
