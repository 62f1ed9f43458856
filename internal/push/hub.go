// Package push delivers toast notifications to the browser over a
// WebSocket, one hub per page session.
package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Notification is one toast pushed to the browser.
type Notification struct {
	Level   string `json:"level"` // success, error, info
	Message string `json:"message"`
}

// client is a single connected socket of the session.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans session notifications out to the session's open sockets. A
// session usually has one socket, but multiple tabs of the same session
// each get their own.
type Hub struct {
	logger     *slog.Logger
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub builds a hub. Run must be started before Serve accepts sockets.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the dispatch loop. It exits when Close is called, closing every
// remaining socket.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.logger.Debug("push client connected")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Debug("push client disconnected")
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow consumer; drop the socket rather than block
					// the session.
					close(c.send)
					delete(h.clients, c)
				}
			}
		case <-h.done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		}
	}
}

// Close stops the dispatch loop and disconnects every socket.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Success implements ports.Notifier.
func (h *Hub) Success(ctx context.Context, msg string) {
	h.push(ctx, Notification{Level: "success", Message: msg})
}

// Error implements ports.Notifier.
func (h *Hub) Error(ctx context.Context, msg string) {
	h.push(ctx, Notification{Level: "error", Message: msg})
}

// Info implements ports.Notifier.
func (h *Hub) Info(ctx context.Context, msg string) {
	h.push(ctx, Notification{Level: "info", Message: msg})
}

func (h *Hub) push(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.ErrorContext(ctx, "encoding notification", slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		h.logger.WarnContext(ctx, "notification dropped, hub backlog full")
	}
}

// Serve upgrades the request and attaches the socket to the hub.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	cl := &client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- cl

	go cl.writePump()
	go cl.readPump()
}

func (c *client) writePump() {
	defer func() { _ = c.conn.Close() }()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	for {
		// Only reading to detect disconnects; the browser never sends.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("push read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}
