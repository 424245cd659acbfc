package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app message addressed to a user id and/or a raw
// email. The raw-email path exists for restaurant owners whose account is not
// linked yet. Rows are created by workflows and only ever mutated by the
// read-state transitions.
type Notification struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Email   string     `gorm:"type:varchar(255);index" json:"email"`
	Type    string     `gorm:"type:varchar(50);not null;index" json:"type"`
	Title   string     `gorm:"type:varchar(255);not null" json:"judul"`
	Message string     `gorm:"type:text;not null" json:"pesan"`
	Payload string     `gorm:"type:jsonb" json:"payload"` // opaque JSON for the client
	Read    bool       `gorm:"default:false;index" json:"dibaca"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
