package repository

import (
	"context"

	"rasosehat-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository persists menu reviews and computes the aggregates the
// menu row caches.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByMenu(ctx context.Context, menuID uuid.UUID, page, limit int) ([]model.Review, int64, error)
	// AggregateForMenu returns the average rating and review count across all
	// reviews of the menu.
	AggregateForMenu(ctx context.Context, menuID uuid.UUID) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return GetDB(ctx, r.db).Create(review).Error
}

func (r *reviewRepository) ListByMenu(ctx context.Context, menuID uuid.UUID, page, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Review{}).Where("menu_id = ?", menuID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Preload("User").
		Where("menu_id = ?", menuID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) AggregateForMenu(ctx context.Context, menuID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := GetDB(ctx, r.db).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("menu_id = ?", menuID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
