package repository

import (
	"context"
	"strings"

	"rasosehat-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuFilter narrows public menu searches. Status defaults to approved in
// the service layer; an empty status here means "no status filter" for the
// admin paths.
type MenuFilter struct {
	Keyword    string
	CategoryID string
	Status     string
	Page       int
	Limit      int
}

// MenuRepository defines data access for menus and their relations.
type MenuRepository interface {
	Create(ctx context.Context, menu *model.Menu) error
	GetByID(ctx context.Context, id string) (*model.Menu, error)
	GetByIDFull(ctx context.Context, id string) (*model.Menu, error)
	GetBySlug(ctx context.Context, slug string) (*model.Menu, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Search(ctx context.Context, filter MenuFilter) ([]model.Menu, int64, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, page, limit int) ([]model.Menu, int64, error)
	Update(ctx context.Context, menu *model.Menu) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	UpdateAggregates(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error
	Delete(ctx context.Context, id string) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *model.Menu) error {
	return GetDB(ctx, r.db).Create(menu).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.Menu, error) {
	var menu model.Menu
	if err := GetDB(ctx, r.db).First(&menu, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetByIDFull loads the menu with every relation the hydrator consumes.
func (r *menuRepository) GetByIDFull(ctx context.Context, id string) (*model.Menu, error) {
	var menu model.Menu
	err := GetDB(ctx, r.db).
		Preload("Restaurant").
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Preload("DietClaims.DietClaim").
		First(&menu, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetBySlug(ctx context.Context, slug string) (*model.Menu, error) {
	var menu model.Menu
	err := GetDB(ctx, r.db).
		Preload("Restaurant").
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Preload("DietClaims.DietClaim").
		First(&menu, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Menu{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *menuRepository) Search(ctx context.Context, filter MenuFilter) ([]model.Menu, int64, error) {
	var menus []model.Menu
	var total int64

	db := GetDB(ctx, r.db)
	base := db.Model(&model.Menu{})
	base = applyMenuFilter(base, filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	fetch := applyMenuFilter(db.Model(&model.Menu{}), filter).
		Preload("Restaurant").
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Preload("DietClaims.DietClaim").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit)
	if err := fetch.Find(&menus).Error; err != nil {
		return nil, 0, err
	}

	return menus, total, nil
}

func applyMenuFilter(q *gorm.DB, filter MenuFilter) *gorm.DB {
	if filter.Keyword != "" {
		q = q.Where("LOWER(nama) LIKE ?", "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

func (r *menuRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, page, limit int) ([]model.Menu, int64, error) {
	var menus []model.Menu
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Menu{}).Where("restaurant_id = ?", restaurantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("restaurant_id = ?", restaurantID).
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Preload("DietClaims.DietClaim").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&menus).Error
	if err != nil {
		return nil, 0, err
	}

	return menus, total, nil
}

func (r *menuRepository) Update(ctx context.Context, menu *model.Menu) error {
	return GetDB(ctx, r.db).Save(menu).Error
}

func (r *menuRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	result := GetDB(ctx, r.db).Model(&model.Menu{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *menuRepository) UpdateAggregates(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	return GetDB(ctx, r.db).Model(&model.Menu{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating":       rating,
		"review_count": reviewCount,
	}).Error
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Menu{}).Error
}
