// Package hydrate converts raw database rows into the canonical API shape.
// Everything here is a pure transformation: JSON text columns are parsed
// defensively, pivot wrappers are flattened, and photo references are
// resolved to public URLs without touching the network.
package hydrate

import (
	"time"

	"rasosehat-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentsView is the restaurant documents bundle in its fixed shape.
type DocumentsView struct {
	ProfilePhoto      string   `json:"foto_profil"`
	IDPhotos          []string `json:"foto_ktp"`
	TaxDocuments      []string `json:"dokumen_pajak"`
	BusinessDocuments []string `json:"dokumen_usaha"`
}

// OwnerView is the flattened owner summary embedded in a restaurant.
type OwnerView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"nama"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// RestaurantView is the client-facing restaurant representation.
type RestaurantView struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"nama"`
	Address        string        `json:"alamat"`
	Description    string        `json:"deskripsi"`
	OwnerName      string        `json:"nama_pemilik"`
	Latitude       *float64      `json:"latitude"`
	Longitude      *float64      `json:"longitude"`
	OpeningHours   string        `json:"jam_operasional"`
	SalesChannels  []string      `json:"kanal_penjualan"`
	HealthFocus    []string      `json:"fokus_kesehatan"`
	CookingMethods []string      `json:"metode_masak"`
	Documents      DocumentsView `json:"dokumen"`
	Photo          *string       `json:"foto"`
	PhotoProvider  string        `json:"foto_provider,omitempty"`
	Status         string        `json:"status"`
	AdminNote      string        `json:"catatan_admin,omitempty"`
	Owner          *OwnerView    `json:"pemilik,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NutritionView keeps every field a pointer: absent source data surfaces as
// null so clients can tell "no data" from zero.
type NutritionView struct {
	Calories     *float64 `json:"kalori"`
	Protein      *float64 `json:"protein"`
	Sugar        *float64 `json:"gula"`
	Fat          *float64 `json:"lemak"`
	Fiber        *float64 `json:"serat"`
	SaturatedFat *float64 `json:"lemak_jenuh"`
	Carbohydrate *float64 `json:"karbohidrat"`
	Cholesterol  *float64 `json:"kolesterol"`
	Sodium       *float64 `json:"natrium"`
}

// TagView is a flattened reference tag (ingredient or diet claim).
type TagView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nama"`
}

// RestaurantSummary is the nested restaurant block inside a menu.
type RestaurantSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"nama"`
	Address string    `json:"alamat"`
}

// MenuView is the client-facing menu representation.
type MenuView struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"nama"`
	Slug          string             `json:"slug"`
	Description   string             `json:"deskripsi"`
	Price         decimal.Decimal    `json:"harga"`
	Category      *string            `json:"kategori"`
	Restaurant    *RestaurantSummary `json:"restoran,omitempty"`
	Nutrition     NutritionView      `json:"nutrisi"`
	Ingredients   []TagView          `json:"bahan"`
	DietClaims    []TagView          `json:"klaim_diet"`
	Photo         *string            `json:"foto"`
	PhotoProvider string             `json:"foto_provider,omitempty"`
	Status        string             `json:"status"`
	Rating        float64            `json:"rating"`
	ReviewCount   int                `json:"jumlah_ulasan"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Restaurant hydrates a raw restaurant row.
func (c Config) Restaurant(row *model.Restaurant) RestaurantView {
	photo, provider := c.ResolvePhoto(row.StoredPath, row.PhotoURL)

	view := RestaurantView{
		ID:             row.ID,
		Name:           row.Name,
		Address:        row.Address,
		Description:    row.Description,
		OwnerName:      row.OwnerName,
		Latitude:       row.Latitude,
		Longitude:      row.Longitude,
		OpeningHours:   row.OpeningHours,
		SalesChannels:  ParseOrDefault(row.SalesChannels, []string{}),
		HealthFocus:    ParseOrDefault(row.HealthFocus, []string{}),
		CookingMethods: ParseOrDefault(row.CookingMethods, []string{}),
		Documents: ParseOrDefault(row.Documents, DocumentsView{
			IDPhotos:          []string{},
			TaxDocuments:      []string{},
			BusinessDocuments: []string{},
		}),
		Photo:         photo,
		PhotoProvider: provider,
		Status:        row.Status,
		AdminNote:     row.AdminNote,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	if row.User != nil {
		view.Owner = &OwnerView{
			ID:    row.User.ID,
			Name:  row.User.Name,
			Email: row.User.Email,
			Role:  row.User.Role,
		}
	}

	return view
}

// Menu hydrates a raw menu row, flattening one level of pivot nesting for
// the ingredient and diet-claim relations.
func (c Config) Menu(row *model.Menu) MenuView {
	photo, provider := c.ResolvePhoto(row.StoredPath, row.PhotoURL)

	view := MenuView{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Price:       row.Price,
		Nutrition: NutritionView{
			Calories:     row.Calories,
			Protein:      row.Protein,
			Sugar:        row.Sugar,
			Fat:          row.Fat,
			Fiber:        row.Fiber,
			SaturatedFat: row.SaturatedFat,
			Carbohydrate: row.Carbohydrate,
			Cholesterol:  row.Cholesterol,
			Sodium:       row.Sodium,
		},
		Ingredients:   make([]TagView, 0, len(row.Ingredients)),
		DietClaims:    make([]TagView, 0, len(row.DietClaims)),
		Photo:         photo,
		PhotoProvider: provider,
		Status:        row.Status,
		Rating:        row.Rating,
		ReviewCount:   row.ReviewCount,
		CreatedAt:     row.CreatedAt,
	}

	if row.Category != nil {
		name := row.Category.Name
		view.Category = &name
	}
	if row.Restaurant != nil {
		view.Restaurant = &RestaurantSummary{
			ID:      row.Restaurant.ID,
			Name:    row.Restaurant.Name,
			Address: row.Restaurant.Address,
		}
	}

	for _, pivot := range row.Ingredients {
		if pivot.Ingredient == nil {
			continue
		}
		view.Ingredients = append(view.Ingredients, TagView{ID: pivot.Ingredient.ID, Name: pivot.Ingredient.Name})
	}
	for _, pivot := range row.DietClaims {
		if pivot.DietClaim == nil {
			continue
		}
		view.DietClaims = append(view.DietClaims, TagView{ID: pivot.DietClaim.ID, Name: pivot.DietClaim.Name})
	}

	return view
}

// Menus hydrates a slice of rows.
func (c Config) Menus(rows []model.Menu) []MenuView {
	views := make([]MenuView, 0, len(rows))
	for i := range rows {
		views = append(views, c.Menu(&rows[i]))
	}
	return views
}

// Restaurants hydrates a slice of rows.
func (c Config) Restaurants(rows []model.Restaurant) []RestaurantView {
	views := make([]RestaurantView, 0, len(rows))
	for i := range rows {
		views = append(views, c.Restaurant(&rows[i]))
	}
	return views
}
