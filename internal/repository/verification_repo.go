package repository

import (
	"context"

	"rasosehat-backend/internal/model"

	"gorm.io/gorm"
)

// VerificationRepository appends and reads the verification audit trail.
// Records are append-only: there is deliberately no update or delete here.
type VerificationRepository interface {
	CreateRestaurantRecord(ctx context.Context, record *model.RestaurantVerification) error
	CreateMenuRecord(ctx context.Context, record *model.MenuVerification) error
	ListForRestaurant(ctx context.Context, restaurantID string, page, limit int) ([]model.RestaurantVerification, int64, error)
	ListForMenu(ctx context.Context, menuID string, page, limit int) ([]model.MenuVerification, int64, error)
	CountForRestaurant(ctx context.Context, restaurantID string) (int64, error)
	CountForMenu(ctx context.Context, menuID string) (int64, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) CreateRestaurantRecord(ctx context.Context, record *model.RestaurantVerification) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *verificationRepository) CreateMenuRecord(ctx context.Context, record *model.MenuVerification) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *verificationRepository) ListForRestaurant(ctx context.Context, restaurantID string, page, limit int) ([]model.RestaurantVerification, int64, error) {
	var records []model.RestaurantVerification
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.RestaurantVerification{}).Where("restaurant_id = ?", restaurantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Preload("Admin").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *verificationRepository) ListForMenu(ctx context.Context, menuID string, page, limit int) ([]model.MenuVerification, int64, error) {
	var records []model.MenuVerification
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.MenuVerification{}).Where("menu_id = ?", menuID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Preload("Admin").
		Where("menu_id = ?", menuID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *verificationRepository) CountForRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.RestaurantVerification{}).Where("restaurant_id = ?", restaurantID).Count(&count).Error
	return count, err
}

func (r *verificationRepository) CountForMenu(ctx context.Context, menuID string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.MenuVerification{}).Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}
