package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is an immutable chat line posted to a room.
type Message struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id" example:"9b1f0e0e-7d0a-4e8b-b6a1-0c1d2e3f4a5b"`
	RoomID    string    `gorm:"size:64;not null;index:idx_messages_room_created,priority:1" json:"roomId" example:"5f0c6a4e-8d2b-4f4e-9a57-1b2c3d4e5f60"`
	Username  string    `gorm:"size:255;not null" json:"username" example:"alice"`
	Content   string    `gorm:"type:text;not null" json:"content" example:"Hello, everyone!"`
	CreatedAt time.Time `gorm:"index:idx_messages_room_created,priority:2" json:"createdAt"`
}

// BeforeCreate assigns an identifier when the caller did not set one
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
