// Package network provides the WebSocket transport reference implementation:
// a Hub fanning out one Room's per-tick broadcast to every connected Client,
// and the HTTP router wiring that serves it alongside the health endpoint.
package network

import (
	"encoding/json"
	"sync"

	"github.com/territoryarena/server/common/utils"
	"github.com/territoryarena/server/roomserver"
)

// Hub owns every Client currently connected to one Room and fans out its
// broadcast projection to all of them each tick.
type Hub struct {
	room *roomserver.Room

	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates a Hub bound to room. Call Run in its own goroutine.
func NewHub(room *roomserver.Room) *Hub {
	return &Hub{
		room:       room,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run drives the Hub's registration bookkeeping and broadcast fan-out. It
// never returns: stopping the Room ends the broadcasts, but Run stays
// blocked waiting on its channels.
func (h *Hub) Run() {
	states := h.room.Subscribe()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.room.Leave(c.playerID)

		case state := <-states:
			data, err := json.Marshal(state)
			if err != nil {
				utils.Debug("network", "failed to marshal game state: "+err.Error())
				continue
			}

			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					// Slow client; drop this frame rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}
