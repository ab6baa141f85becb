package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// LowStockAlert is broadcast whenever a commit leaves an item at or below
// its reorder threshold
type LowStockAlert struct {
	ItemID     string    `json:"itemId"`
	ItemName   string    `json:"itemName"`
	Quantity   float64   `json:"quantity"`
	UnitSymbol string    `json:"unitSymbol"`
	Threshold  float64   `json:"threshold"`
	At         time.Time `json:"at"`
}

// Hub fans low-stock alerts out to connected websocket clients
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
	}
}

// Broadcast sends an alert to every connected client. Clients with a full
// send buffer are skipped rather than blocking a commit path.
func (h *Hub) Broadcast(alert LowStockAlert) {
	data, err := json.Marshal(alert)
	if err != nil {
		log.Printf("Error marshaling alert: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Println("WebSocket buffer full, dropping alert")
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
