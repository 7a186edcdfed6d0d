package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"inkwell/internal/models"

	"github.com/google/uuid"
)

// outbound pairs a payload with the user it is addressed to.
type outbound struct {
	TargetUserID uuid.UUID
	Payload      []byte
}

// Hub maintains the set of active clients and routes notification payloads
// to the connections belonging to their recipient.
type Hub struct {
	// Registered clients. Maps user ID to a set of active client connections.
	clients map[uuid.UUID]map[*Client]bool

	// Channel for sending payloads to a specific user.
	send chan *outbound

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		send:       make(chan *outbound),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]map[*Client]bool),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; !ok {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			log.Printf("WebSocket client registered for user %s (%d connections)", client.UserID, len(h.clients[client.UserID]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if userClients, ok := h.clients[client.UserID]; ok {
				if _, clientOk := userClients[client]; clientOk {
					delete(userClients, client)
					if len(userClients) == 0 {
						delete(h.clients, client.UserID)
					}
					log.Printf("WebSocket client unregistered for user %s (%d connections left)", client.UserID, len(userClients))
				}
			}
			h.mu.Unlock()

		case message := <-h.send:
			h.mu.RLock()
			if userClients, ok := h.clients[message.TargetUserID]; ok {
				for client := range userClients {
					select {
					case client.Send <- message.Payload:
					default:
						log.Printf("Send buffer full for a client of user %s, payload dropped", client.UserID)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// notificationEvent is the wire shape pushed to connected clients.
type notificationEvent struct {
	Event        string               `json:"event"`
	Notification *models.Notification `json:"notification"`
}

// PushNotification offers a freshly written notification to the recipient's
// live connections. Users without a connection simply miss the push; the
// stored notification remains the durable copy.
func (h *Hub) PushNotification(n *models.Notification) {
	payload, err := json.Marshal(&notificationEvent{
		Event:        "notification",
		Notification: n,
	})
	if err != nil {
		log.Printf("Failed to marshal notification %s: %v", n.ID, err)
		return
	}

	message := &outbound{
		TargetUserID: n.NotificationFor,
		Payload:      payload,
	}
	select {
	case h.send <- message:
	case <-time.After(1 * time.Second):
		log.Printf("Timeout queuing notification for user %s, payload dropped", n.NotificationFor)
	}
}
