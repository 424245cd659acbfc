package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Menu belongs to a restaurant and carries per-serving nutrition numbers.
// Every nutrition field is independently nullable: an absent value means the
// seller supplied no data, which is different from zero.
type Menu struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	CategoryID   *uuid.UUID  `gorm:"type:uuid;index" json:"category_id"`
	Category     *MenuCategory `gorm:"foreignKey:CategoryID" json:"kategori,omitempty"`

	Name        string          `gorm:"column:nama;type:varchar(255);not null" json:"nama"`
	Slug        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"deskripsi"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"harga"`

	Calories     *float64 `gorm:"column:kalori" json:"kalori"`
	Protein      *float64 `gorm:"column:protein" json:"protein"`
	Sugar        *float64 `gorm:"column:gula" json:"gula"`
	Fat          *float64 `gorm:"column:lemak" json:"lemak"`
	Fiber        *float64 `gorm:"column:serat" json:"serat"`
	SaturatedFat *float64 `gorm:"column:lemak_jenuh" json:"lemak_jenuh"`
	Carbohydrate *float64 `gorm:"column:karbohidrat" json:"karbohidrat"`
	Cholesterol  *float64 `gorm:"column:kolesterol" json:"kolesterol"`
	Sodium       *float64 `gorm:"column:natrium" json:"natrium"`

	PhotoURL   string `gorm:"type:text" json:"foto"` // legacy inline column
	StoredPath string `gorm:"type:text" json:"stored_path"`
	Provider   string `gorm:"type:varchar(20)" json:"provider"`

	Status string `gorm:"type:varchar(20);not null;default:'menunggu';index" json:"status"`

	// Derived aggregates, recomputed on each new review.
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"jumlah_ulasan"`

	Ingredients []MenuIngredient `gorm:"foreignKey:MenuID" json:"bahan,omitempty"`
	DietClaims  []MenuDietClaim  `gorm:"foreignKey:MenuID" json:"klaim_diet,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MenuVerification is the append-only audit trail of admin decisions on a menu.
type MenuVerification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"menu_id"`
	Menu      *Menu      `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	AdminID   *uuid.UUID `gorm:"type:uuid" json:"admin_id"`
	Admin     *User      `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Status    string     `gorm:"type:varchar(20);not null" json:"status"`
	Note      string     `gorm:"type:text" json:"catatan"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (v *MenuVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// MenuCategory groups menus for browsing (e.g. "Makanan Utama", "Minuman").
type MenuCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nama;type:varchar(100);uniqueIndex;not null" json:"nama"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Ingredient is a reference tag created on first use by the pivot resolver.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nama;type:varchar(255);not null;index" json:"nama"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DietClaim is a reference tag for diet suitability (e.g. "rendah gula").
type DietClaim struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nama;type:varchar(255);not null;index" json:"nama"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *DietClaim) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// MenuIngredient is a pivot row linking a menu to an ingredient tag. The
// resolver replaces the full set on every sync, so rows carry no state of
// their own beyond the link.
type MenuIngredient struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"menu_id"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"bahan,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (p *MenuIngredient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MenuDietClaim is a pivot row linking a menu to a diet-claim tag.
type MenuDietClaim struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"menu_id"`
	DietClaimID uuid.UUID  `gorm:"type:uuid;not null;index" json:"diet_claim_id"`
	DietClaim   *DietClaim `gorm:"foreignKey:DietClaimID" json:"klaim_diet,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *MenuDietClaim) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
