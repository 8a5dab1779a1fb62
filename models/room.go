package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a named channel that scopes messages and membership.
type Room struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id" example:"5f0c6a4e-8d2b-4f4e-9a57-1b2c3d4e5f60"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name" example:"general"`
	Description *string   `gorm:"type:text" json:"description,omitempty" example:"Everything and nothing"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// BeforeCreate assigns an identifier when the caller did not set one
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
