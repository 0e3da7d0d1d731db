package hub

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scythe504/spyfall-backend/internal"
)

// DefaultSendBuffer is the outbox size used when NewClient is given a
// non-positive buffer.
const DefaultSendBuffer = 64

// Client is one websocket connection as seen by the hub. The transport drains
// Outbox and writes each frame to the socket.
type Client struct {
	ID   string
	send chan []byte
}

func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Client{
		ID:   id,
		send: make(chan []byte, buffer),
	}
}

// Outbox is closed once the client is unregistered.
func (c *Client) Outbox() <-chan []byte {
	return c.send
}

// Hub maintains the set of active connections and the rooms they listen to.
// Enqueueing never blocks: a frame for a client whose outbox is full is
// dropped, so callers may publish while holding a room lock.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]struct{}
	log     zerolog.Logger
}

func New(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
		log:     logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister forgets the connection everywhere and closes its outbox.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	for code, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	close(c.send)
}

// Subscribe adds connID to the audience of room code.
func (h *Hub) Subscribe(code, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[code]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[code] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) Send(connID string, msg internal.Message[any]) {
	frame, ok := h.encode(msg)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[connID]; ok {
		h.enqueue(c, msg.Type, frame)
	}
}

func (h *Hub) Broadcast(code string, msg internal.Message[any]) {
	frame, ok := h.encode(msg)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID := range h.rooms[code] {
		if c, ok := h.clients[connID]; ok {
			h.enqueue(c, msg.Type, frame)
		}
	}
}

// Members returns the number of connections listening to room code.
func (h *Hub) Members(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

func (h *Hub) encode(msg internal.Message[any]) ([]byte, bool) {
	frame, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("event", msg.Type).Msg("failed to encode outbound message")
		return nil, false
	}
	return frame, true
}

// enqueue must run under h.mu so that Unregister cannot close the channel
// concurrently.
func (h *Hub) enqueue(c *Client, eventType string, frame []byte) {
	select {
	case c.send <- frame:
	default:
		h.log.Warn().Str("player", c.ID).Str("event", eventType).Msg("outbox full, dropping message")
	}
}
