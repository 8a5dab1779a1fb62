package websocket

import (
	"encoding/json"
	"log"
)

// Event names carried in the envelope "type" field
const (
	EventJoinRoom    = "join-room"
	EventLeaveRoom   = "leave-room"
	EventSendMessage = "send-message"
	EventNewMessage  = "new-message"
	EventError       = "error"
)

// Error texts sent to clients
const (
	ErrTextSendFailed   = "Failed to send message"
	ErrTextInvalidFrame = "Invalid message format"
	ErrTextUnknownEvent = "Unknown event type"
	ErrTextInvalidRoom  = "Room id is required"
	ErrTextRateLimited  = "Rate limit exceeded, slow down"
)

// Message represents a websocket message
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// inboundMessage defers payload decoding until the type is known.
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SendMessagePayload is the body of a send-message event.
type SendMessagePayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Content  string `json:"content"`
}

// ErrorPayload is the body of a private error event.
type ErrorPayload struct {
	Message string `json:"message"`
}

func encodeMessage(msgType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Message{Type: msgType, Payload: payload})
}

func encodeError(text string) []byte {
	data, err := encodeMessage(EventError, ErrorPayload{Message: text})
	if err != nil {
		log.Printf("error marshaling error event: %v", err)
		return nil
	}
	return data
}
