package controllers

import (
	"github.com/CUknot/realtime_chat/config"
	"github.com/CUknot/realtime_chat/database"
	"github.com/CUknot/realtime_chat/websocket"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the REST API and the websocket endpoint on router.
func RegisterRoutes(router *gin.Engine, store database.Store, hub *websocket.Hub, cfg config.Config) {
	rooms := &RoomController{Store: store}
	messages := &MessageController{Store: store, Hub: hub, HistoryLimit: cfg.HistoryLimit}

	api := router.Group("/api")
	{
		// Room routes
		api.GET("/rooms", rooms.GetRooms)
		api.POST("/rooms", rooms.CreateRoom)
		api.GET("/rooms/:id", rooms.GetRoom)

		// Message routes
		api.GET("/messages/room/:roomId", messages.GetRoomMessages)
		api.POST("/messages", messages.CreateMessage)

		api.GET("/health", HealthCheck)
	}

	// WebSocket route
	router.GET("/ws", websocket.NewHandler(hub, cfg).HandleConnection)
}
