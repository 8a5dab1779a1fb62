package websocket

import (
	"context"
	"encoding/json"
	"log"
	"strings"
)

// handleMessage processes an incoming WebSocket message
func (c *Client) handleMessage(data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message from client %s: %v", c.id, err)
		c.sendError(ErrTextInvalidFrame)
		return
	}

	switch msg.Type {
	case EventJoinRoom:
		roomID, ok := decodeRoomID(msg.Payload)
		if !ok {
			c.sendError(ErrTextInvalidRoom)
			return
		}
		c.hub.Join(c, roomID)
	case EventLeaveRoom:
		roomID, ok := decodeRoomID(msg.Payload)
		if !ok {
			c.sendError(ErrTextInvalidRoom)
			return
		}
		c.hub.Leave(c, roomID)
	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling message payload from client %s: %v", c.id, err)
			c.sendError(ErrTextSendFailed)
			return
		}

		if !c.allow() {
			log.Printf("Client %s exceeded the message rate limit", c.id)
			c.sendError(ErrTextRateLimited)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		c.hub.Publish(ctx, c, PublishRequest{
			RoomID:   payload.RoomID,
			Username: payload.Username,
			Content:  payload.Content,
		})
	default:
		log.Printf("Client %s sent unknown event type %q", c.id, msg.Type)
		c.sendError(ErrTextUnknownEvent)
	}
}

// decodeRoomID accepts a bare string payload, or an object with a roomId field.
func decodeRoomID(raw json.RawMessage) (string, bool) {
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		var obj struct {
			RoomID string `json:"roomId"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", false
		}
		id = obj.RoomID
	}

	id = strings.TrimSpace(id)
	return id, id != ""
}
