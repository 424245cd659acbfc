package repository

import (
	"context"

	"rasosehat-backend/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository handles the menu category reference table.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.MenuCategory, error)
	GetByID(ctx context.Context, id string) (*model.MenuCategory, error)
	Create(ctx context.Context, category *model.MenuCategory) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.MenuCategory, error) {
	var categories []model.MenuCategory
	if err := GetDB(ctx, r.db).Order("nama ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.MenuCategory, error) {
	var category model.MenuCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.MenuCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}
