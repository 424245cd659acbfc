package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is submitted by a seller candidate through a three-step flow
// (skeleton, profile, documents) and verified by an admin. The owner link is
// nullable: legacy rows were imported before accounts existed and are
// repaired on approval by matching email/phone/name.
type Restaurant struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User    *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Name        string `gorm:"type:varchar(255);not null" json:"nama"`
	Address     string `gorm:"type:text;not null" json:"alamat"`
	Description string `gorm:"type:text" json:"deskripsi"`
	OwnerName   string `gorm:"type:varchar(255)" json:"nama_pemilik"`
	OwnerEmail  string `gorm:"type:varchar(255)" json:"email_pemilik"`
	OwnerPhone  string `gorm:"type:varchar(20)" json:"telepon_pemilik"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	OpeningHours  string `gorm:"type:varchar(100)" json:"jam_operasional"`
	SalesChannels string `gorm:"type:jsonb" json:"kanal_penjualan"` // JSON array of channel names

	// Free-form JSON columns; stored as text, parsed defensively on read.
	HealthFocus    string `gorm:"type:jsonb" json:"fokus_kesehatan"`
	CookingMethods string `gorm:"type:jsonb" json:"metode_masak"`

	// Documents bundle: {"foto_profil": "...", "foto_ktp": [...],
	// "dokumen_pajak": [...], "dokumen_usaha": [...]}
	Documents string `gorm:"type:jsonb" json:"dokumen"`

	PhotoURL   string `gorm:"type:text" json:"foto"` // legacy inline column
	StoredPath string `gorm:"type:text" json:"stored_path"`
	Provider   string `gorm:"type:varchar(20)" json:"provider"`

	Status    string `gorm:"type:varchar(20);not null;default:'menunggu';index" json:"status"`
	AdminNote string `gorm:"type:text" json:"catatan_admin"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RestaurantVerification is the append-only audit trail of admin decisions on
// a restaurant. Rows are never updated or deleted by the workflow.
type RestaurantVerification struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	AdminID      *uuid.UUID `gorm:"type:uuid" json:"admin_id"` // nullable for automated transitions
	Admin        *User      `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null" json:"status"`
	Note         string     `gorm:"type:text" json:"catatan"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
}

func (v *RestaurantVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
