// Package ws pushes dataset change events to connected dashboards.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const EventDatasetUpdated = "dataset_updated"

// Event is the only server-to-client message.
type Event struct {
	Type      string    `json:"type"`
	UpdatedAt string    `json:"updated_at,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHub accepts upgrades from allowedOrigins; "*" allows any origin.
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        slog.Default().With(slog.String("component", "ws.Hub")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Run is the hub's main loop. It closes every client when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.clientsMu.Unlock()
			h.log.Info("client connected", slog.String("client_id", c.ID), slog.Int("total", n))
		case c := <-h.unregister:
			h.removeClient(c)
		case ev := <-h.broadcast:
			h.fanOut(ev)
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues ev for every client. A full queue drops the event.
func (h *Hub) Broadcast(ev Event) {
	if ev.SentAt.IsZero() {
		ev.SentAt = time.Now()
	}
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn("broadcast buffer full, dropping event", slog.String("type", ev.Type))
	}
}

// NotifyDatasetUpdated tells dashboards to refetch.
func (h *Hub) NotifyDatasetUpdated(updatedAt string) {
	h.Broadcast(Event{Type: EventDatasetUpdated, UpdatedAt: updatedAt})
}

func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and attaches a client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := newClient(uuid.NewString(), conn, h)
	h.Register(c)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) removeClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.log.Info("client disconnected", slog.String("client_id", c.ID), slog.Int("total", len(h.clients)))
	}
}

func (h *Hub) fanOut(ev Event) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.trySend(ev) {
			h.log.Warn("client buffer full, disconnecting", slog.String("client_id", c.ID))
			h.removeClient(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
