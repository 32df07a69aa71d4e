package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

// HandleKitchenBoard upgrades the connection and joins the restaurant's
// kitchen room.
func (h *Handler) HandleKitchenBoard(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, restaurantID.Hex())
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// PublishOrders implements the order service's notifier contract.
func (h *Handler) PublishOrders(restaurantID string, orders interface{}) {
	h.hub.SendKitchenSnapshot(restaurantID, orders)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
