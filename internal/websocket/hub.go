package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
)

// OrderEvent is pushed to connected manager dashboards whenever an
// order is placed or moves through the workflow.
type OrderEvent struct {
	Type      string       `json:"type"` // order_placed, order_status_changed
	OrderID   uint         `json:"order_id"`
	Status    string       `json:"status"`
	Total     float64      `json:"total"`
	Customer  string       `json:"customer"`
	Order     *model.Order `json:"order,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Hub tracks connected manager clients and fans order events out to
// them. A manager may be connected from several devices at once.
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registration and broadcast traffic. Call it once in
// its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()
			logger.Info("Order feed client connected", map[string]interface{}{
				"user_id":  client.UserID,
				"sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			// A client can be unregistered twice: the slow-consumer
			// drop races the read pump's deferred unregister. Only
			// close Send when this pass actually removed the client.
			removed := false
			if list, ok := h.clients[client.UserID]; ok {
				remaining := make([]*Client, 0, len(list))
				for _, c := range list {
					if c == client {
						removed = true
						continue
					}
					remaining = append(remaining, c)
				}
				if len(remaining) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = remaining
				}
				if removed {
					close(client.Send)
				}
			}
			h.mu.Unlock()
			if removed {
				logger.Info("Order feed client disconnected", map[string]interface{}{
					"user_id": client.UserID,
				})
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, list := range h.clients {
				for _, client := range list {
					select {
					case client.Send <- message:
					default:
						// Slow consumer, drop the connection
						go h.Unregister(client)
						logger.Warn("Order feed client buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastOrderEvent publishes an order event to every connected
// client. Events are dropped rather than blocking order processing
// when the broadcast buffer is full.
func (h *Hub) BroadcastOrderEvent(eventType string, order *model.Order) {
	event := OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		Status:    string(order.Status),
		Total:     order.TotalAmount,
		Customer:  order.CustomerName,
		Order:     order,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_id": order.ID,
			"type":     eventType,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Order event channel full, event dropped", map[string]interface{}{
			"order_id": order.ID,
			"type":     eventType,
		})
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount reports how many sessions are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, list := range h.clients {
		count += len(list)
	}
	return count
}
