package bridge

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"flowshow/internal/domain"
)

// sendBuffer is how many frames a slow panel may fall behind before frames
// are dropped for it
const sendBuffer = 64

// Hub is the panel side of the controller when the panel is remote. Every
// update and resize is broadcast to all connected panels as JSON.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     zerolog.Logger
}

type client struct {
	send chan []byte
}

// NewHub creates a hub with no panels connected
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log.With().Str("component", "hub").Logger(),
	}
}

// PostMessage broadcasts an update. It never blocks on a panel.
func (h *Hub) PostMessage(msg domain.Update) error {
	return h.broadcast(msg)
}

// Resize broadcasts a resize notice
func (h *Hub) Resize(width, height int) error {
	return h.broadcast(domain.NewResizeNotice(width, height))
}

// Clients returns the number of connected panels
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn().Msg("panel is not keeping up, dropping frame")
		}
	}
	return nil
}

func (h *Hub) register() *client {
	c := &client{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
