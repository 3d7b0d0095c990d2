package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/bq-cafe/pos-api/internal/events"
)

// Close reasons sent to boards the hub drops.
const (
	reasonShutdown   = "server shutting down"
	reasonFellBehind = "board fell behind, reconnect to resync"
)

// areaEvent routes one event to the boards of an area.
type areaEvent struct {
	AreaID uuid.UUID
	Event  events.Event
}

// Hub keeps the live table-board connections, grouped by area, and
// pushes table and order events to them.
type Hub struct {
	// Registered clients by area ID
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan *areaEvent

	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *areaEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns when ctx is done, closing
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.areaID] == nil {
				h.rooms[client.areaID] = make(map[*Client]bool)
			}
			h.rooms[client.areaID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client, websocket.CloseNormalClosure, "")
			h.mu.Unlock()

		case ev := <-h.broadcast:
			message, err := json.Marshal(ev.Event)
			if err != nil {
				log.Error().Err(err).Str("type", ev.Event.Type).Msg("marshal ws event")
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[ev.AreaID] {
				select {
				case client.send <- message:
				default:
					h.remove(client, websocket.CloseTryAgainLater, reasonFellBehind)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client, code int, reason string) {
	clients, ok := h.rooms[client.areaID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	client.detach(code, reason)
	if len(clients) == 0 {
		delete(h.rooms, client.areaID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.rooms {
		for client := range clients {
			client.detach(websocket.CloseGoingAway, reasonShutdown)
		}
	}
	h.rooms = make(map[uuid.UUID]map[*Client]bool)
}

// BroadcastToArea queues an event for every client watching areaID.
func (h *Hub) BroadcastToArea(ctx context.Context, areaID uuid.UUID, e events.Event) error {
	select {
	case h.broadcast <- &areaEvent{AreaID: areaID, Event: e}:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish implements events.Publisher, routing by the event's area.
func (h *Hub) Publish(ctx context.Context, e events.Event) error {
	return h.BroadcastToArea(ctx, e.AreaID, e)
}

// ClientCount reports how many clients watch areaID.
func (h *Hub) ClientCount(areaID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[areaID])
}
