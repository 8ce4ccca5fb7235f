package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Message is sent to browsers over the WebSocket.
type Message struct {
	// Type is a store event ("added", "updated", "dismissed", "removed") or
	// a toaster event ("mounted", "closed").
	Type string `json:"type"`

	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
	Reason   string `json:"reason,omitempty"`

	// HTML is the rendered toaster after the event.
	HTML string `json:"html,omitempty"`
}

// ClientMessage is an interaction reported by a browser.
type ClientMessage struct {
	// Type is one of hover, close, action, cancel, key, pointer, visibility.
	Type string `json:"type"`

	ID string `json:"id,omitempty"`

	// Value is the hover or visibility flag.
	Value bool `json:"value,omitempty"`

	// Phase is the pointer phase: down, move, up or cancel.
	Phase     string  `json:"phase,omitempty"`
	PointerID int     `json:"pointerId,omitempty"`
	Source    string  `json:"source,omitempty"`
	Y         float64 `json:"y,omitempty"`
	OnButton  bool    `json:"onButton,omitempty"`

	Code      string `json:"code,omitempty"`
	Alt       bool   `json:"alt,omitempty"`
	Ctrl      bool   `json:"ctrl,omitempty"`
	Meta      bool   `json:"meta,omitempty"`
	Shift     bool   `json:"shift,omitempty"`
	InToaster bool   `json:"inToaster,omitempty"`
}

// Hub manages the preview WebSocket connections.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// onMessage receives client interactions on the connection's goroutine.
	onMessage func(ClientMessage)
}

// NewHub creates a hub. onMessage may be nil.
func NewHub(logger *slog.Logger, onMessage func(ClientMessage)) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		onMessage: onMessage,
	}
}

// ServeHTTP upgrades the request and reads client messages until the
// connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Debug("preview client connected", "remote", req.RemoteAddr)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if _, ok := err.(*json.SyntaxError); ok {
				continue
			}
			break
		}
		if h.onMessage != nil {
			h.onMessage(msg)
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends msg to all clients. Clients that fail to receive it are
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
