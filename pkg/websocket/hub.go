package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans order snapshots out to kitchen-board clients. Each restaurant has
// one room; every connected board in that room receives the full current
// order list whenever anything changes. All map mutation happens on the Run
// goroutine: snapshots from request handlers arrive through the broadcast
// channel, never by touching the maps directly.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string      `json:"type"`
	RoomID    string      `json:"room_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func kitchenRoom(restaurantID string) string {
	return "kitchen_" + restaurantID
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	h.joinRoom(client, kitchenRoom(client.RestaurantID))
	log.Printf("Kitchen board connected: restaurant %s", client.RestaurantID)

	welcomeMsg := Message{
		Type:      "welcome",
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}

	h.sendToClient(client, welcomeMsg)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}

		log.Printf("Kitchen board disconnected: restaurant %s", client.RestaurantID)
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	if msg.RoomID != "" {
		h.sendToRoom(msg.RoomID, message)
	} else {
		h.sendToAll(message)
	}
}

func (h *Hub) sendToAll(data []byte) {
	h.mutex.RLock()
	var slow []*Client
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}
}

func (h *Hub) sendToRoom(roomID string, data []byte) {
	h.mutex.RLock()
	var slow []*Client
	for client := range h.rooms[roomID] {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}
}

// sendToClient is best-effort; a client too slow for its welcome message is
// cleaned up by the pumps once the connection stalls.
func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	select {
	case client.send <- data:
	default:
	}
}

// SendKitchenSnapshot pushes the full current order list for a restaurant to
// every board in its room. Boards re-derive all downstream state from the
// snapshot, never from deltas. Safe to call from any goroutine: the message
// is handed to the Run goroutine, which owns the client and room maps.
func (h *Hub) SendKitchenSnapshot(restaurantID string, orders interface{}) {
	message := Message{
		Type:      "orders_snapshot",
		RoomID:    kitchenRoom(restaurantID),
		Timestamp: getCurrentTimestamp(),
		Data:      orders,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return
	}

	h.broadcast <- data
}

func getCurrentTimestamp() int64 {
	return time.Now().UnixMilli()
}
