package repository

import (
	"context"

	"rasosehat-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantRepository defines data access for restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
	GetByIDWithOwner(ctx context.Context, id string) (*model.Restaurant, error)
	// CurrentForUser returns the user's restaurant. Legacy data may hold
	// duplicates; the most-recently-updated row wins.
	CurrentForUser(ctx context.Context, userID uuid.UUID) (*model.Restaurant, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]model.Restaurant, int64, error)
	Update(ctx context.Context, restaurant *model.Restaurant) error
	// UpdateFields applies a partial update and reports how many rows matched,
	// so callers can distinguish not-found from success.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	UpdateOwnerLink(ctx context.Context, id string, userID uuid.UUID) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return GetDB(ctx, r.db).Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := GetDB(ctx, r.db).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetByIDWithOwner(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := GetDB(ctx, r.db).Preload("User").First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) CurrentForUser(ctx context.Context, userID uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) ListByStatus(ctx context.Context, status string, page, limit int) ([]model.Restaurant, int64, error) {
	var restaurants []model.Restaurant
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Restaurant{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Preload("User")
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}

	return restaurants, total, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *model.Restaurant) error {
	return GetDB(ctx, r.db).Save(restaurant).Error
}

func (r *restaurantRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	result := GetDB(ctx, r.db).Model(&model.Restaurant{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *restaurantRepository) UpdateOwnerLink(ctx context.Context, id string, userID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Restaurant{}).Where("id = ?", id).Update("user_id", userID).Error
}
