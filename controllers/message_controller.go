package controllers

import (
	"log"
	"net/http"

	"github.com/CUknot/realtime_chat/database"
	"github.com/CUknot/realtime_chat/websocket"
	"github.com/gin-gonic/gin"
)

// CreateMessageInput is the body of POST /api/messages.
type CreateMessageInput struct {
	RoomID   string `json:"roomId" example:"5f0c6a4e-8d2b-4f4e-9a57-1b2c3d4e5f60"`
	Username string `json:"username" example:"alice"`
	Content  string `json:"content" example:"Hello, everyone!"`
}

// MessageController serves message history and posts messages over HTTP.
type MessageController struct {
	Store        database.Store
	Hub          *websocket.Hub
	HistoryLimit int
}

// GetRoomMessages godoc
// @Summary Get messages for a room
// @Description Returns the messages of a room, oldest first, capped at the history limit
// @Tags messages
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {array} models.Message "List of messages"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages/room/{roomId} [get]
func (mc *MessageController) GetRoomMessages(c *gin.Context) {
	messages, err := mc.Store.ListMessages(c.Request.Context(), c.Param("roomId"), mc.HistoryLimit)
	if err != nil {
		log.Printf("Error fetching messages for room %s: %v", c.Param("roomId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateMessage godoc
// @Summary Create a new message
// @Description Stores a message and broadcasts it to everyone in the room
// @Tags messages
// @Accept json
// @Produce json
// @Param message body CreateMessageInput true "Message Creation"
// @Success 201 {object} models.Message "Message created"
// @Failure 400 {object} map[string]string "Missing required fields"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages [post]
func (mc *MessageController) CreateMessage(c *gin.Context) {
	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message, err := mc.Hub.Publish(c.Request.Context(), nil, websocket.PublishRequest{
		RoomID:   input.RoomID,
		Username: input.Username,
		Content:  input.Content,
	})
	if err != nil {
		if database.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}
