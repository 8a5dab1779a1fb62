package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/CUknot/realtime_chat/config"
	"github.com/CUknot/realtime_chat/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Handler upgrades HTTP requests into hub clients.
type Handler struct {
	hub            *Hub
	upgrader       websocket.Upgrader
	maxMessageSize int64
	rateLimit      config.RateLimitConfig
}

// NewHandler builds the /ws endpoint for hub using the origin, size and rate
// settings in cfg.
func NewHandler(hub *Hub, cfg config.Config) *Handler {
	origins := utils.NewOriginPolicy(cfg.AllowedOrigins)

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin header
				if origin == "" {
					return true
				}
				if !origins.Allowed(origin) {
					log.Printf("Rejected websocket upgrade from origin %q", origin)
					return false
				}
				return true
			},
		},
		maxMessageSize: cfg.MaxMessageSize,
		rateLimit:      cfg.RateLimit,
	}
}

func (h *Handler) newLimiter() *rate.Limiter {
	if !h.rateLimit.Enabled() {
		return nil
	}
	perSecond := float64(h.rateLimit.Burst) / h.rateLimit.Interval.Seconds()
	return rate.NewLimiter(rate.Limit(perSecond), h.rateLimit.Burst)
}

// HandleConnection godoc
// @Summary Open a realtime connection
// @Description Upgrades to a websocket carrying join-room, leave-room and send-message events
// @Tags websocket
// @Success 101 "Switching protocols"
// @Failure 403 "Origin not allowed"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error upgrading connection: %v", err)
		return
	}

	client := newClient(h.hub, conn, h.newLimiter())
	if !h.hub.Register(client) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	log.Printf("Client %s connected from %s", client.ID(), c.ClientIP())

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump(h.maxMessageSize)
}
