package database

import (
	"context"
	"strings"

	"github.com/CUknot/realtime_chat/models"
)

// Store is the room registry and message log. Postgres, SQLite and MongoDB
// adapters implement it; exactly one is active per process.
type Store interface {
	CreateRoom(ctx context.Context, name string, description *string) (*models.Room, error)
	// ListRooms returns every room, newest first.
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	CreateMessage(ctx context.Context, roomID, username, content string) (*models.Message, error)
	// ListMessages returns the first limit messages of a room in ascending
	// creation order. A limit of zero or less returns them all.
	ListMessages(ctx context.Context, roomID string, limit int) ([]models.Message, error)

	Ping(ctx context.Context) error
	Close() error
}

// roomInput holds a normalized CreateRoom request.
type roomInput struct {
	Name        string
	Description *string
}

func normalizeRoom(name string, description *string) (roomInput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return roomInput{}, &ValidationError{Field: "name"}
	}

	in := roomInput{Name: name}
	if description != nil {
		if d := strings.TrimSpace(*description); d != "" {
			in.Description = &d
		}
	}
	return in, nil
}

// messageInput holds a normalized CreateMessage request.
type messageInput struct {
	RoomID   string
	Username string
	Content  string
}

func normalizeMessage(roomID, username, content string) (messageInput, error) {
	in := messageInput{
		RoomID:   strings.TrimSpace(roomID),
		Username: strings.TrimSpace(username),
		Content:  strings.TrimSpace(content),
	}

	switch {
	case in.RoomID == "":
		return in, &ValidationError{Field: "roomId"}
	case in.Username == "":
		return in, &ValidationError{Field: "username"}
	case in.Content == "":
		return in, &ValidationError{Field: "content"}
	}
	return in, nil
}
