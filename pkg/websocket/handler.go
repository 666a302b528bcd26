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

func (h *Handler) HandleWebSocket(c *gin.Context) {
	staffID, exists := c.Get("staff_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, exists := c.Get("role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found"})
		return
	}

	staffObjectID, ok := staffID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	roleStr, ok := role.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, staffObjectID, roleStr)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// SendTableUpdate pushes an event to clients watching one table and to the
// floor room so table maps refresh without a dedicated watch.
func (h *Handler) SendTableUpdate(tableID primitive.ObjectID, updateType string, data map[string]interface{}) {
	message := Message{
		Type:      updateType,
		RoomID:    "table_" + tableID.Hex(),
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendTableUpdate(tableID, message)
	h.hub.BroadcastFloor(message)
}

func (h *Handler) BroadcastFloorEvent(eventType string, data map[string]interface{}) {
	message := Message{
		Type:      eventType,
		RoomID:    "floor",
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.BroadcastFloor(message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
