package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/CUknot/realtime_chat/database"
	"github.com/gin-gonic/gin"
)

// CreateRoomInput is the body of POST /api/rooms.
type CreateRoomInput struct {
	Name        string  `json:"name" example:"General Chat"`
	Description *string `json:"description" example:"Talk about anything"`
}

// RoomController serves the room registry.
type RoomController struct {
	Store database.Store
}

// GetRooms godoc
// @Summary Get all rooms
// @Description Returns every chat room, newest first
// @Tags rooms
// @Produce json
// @Success 200 {array} models.Room "List of rooms"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms [get]
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Store.ListRooms(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary Create a new chat room
// @Description Creates a chat room with a unique name
// @Tags rooms
// @Accept json
// @Produce json
// @Param room body CreateRoomInput true "Room Creation"
// @Success 201 {object} models.Room "Room created"
// @Failure 400 {object} map[string]string "Missing name or room already exists"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms [post]
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	room, err := rc.Store.CreateRoom(c.Request.Context(), input.Name, input.Description)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, room)
	case database.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
	case errors.Is(err, database.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room already exists"})
	default:
		log.Printf("Error creating room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
	}
}

// GetRoom godoc
// @Summary Get details of a specific room
// @Description Returns a single chat room by id
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} models.Room "Room details"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/rooms/{id} [get]
func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.Store.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		log.Printf("Error fetching room %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room"})
		return
	}

	c.JSON(http.StatusOK, room)
}
