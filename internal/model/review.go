package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a buyer's rating of an approved menu. The menu's aggregate
// rating and review count are recomputed from these rows on every insert.
type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID  uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_id"`
	Menu    *Menu     `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating  int       `gorm:"not null" json:"rating"` // 1..5
	Comment string    `gorm:"type:text" json:"komentar"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
