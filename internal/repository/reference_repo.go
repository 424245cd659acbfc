package repository

import (
	"context"
	"strings"

	"rasosehat-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferenceRepository handles the ingredient and diet-claim reference tables
// plus their menu pivot rows. Pivot replacement is delete-then-insert: the
// new set fully supersedes whatever was linked before.
type ReferenceRepository interface {
	FindIngredientByName(ctx context.Context, name string) (*model.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error
	ListIngredients(ctx context.Context, page, limit int) ([]model.Ingredient, int64, error)

	FindDietClaimByName(ctx context.Context, name string) (*model.DietClaim, error)
	CreateDietClaim(ctx context.Context, claim *model.DietClaim) error
	ListDietClaims(ctx context.Context, page, limit int) ([]model.DietClaim, int64, error)

	ReplaceMenuIngredients(ctx context.Context, menuID uuid.UUID, ingredientIDs []uuid.UUID) error
	ReplaceMenuDietClaims(ctx context.Context, menuID uuid.UUID, claimIDs []uuid.UUID) error
	CountMenuIngredients(ctx context.Context, menuID uuid.UUID) (int64, error)
	CountMenuDietClaims(ctx context.Context, menuID uuid.UUID) (int64, error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// FindIngredientByName does a case-insensitive substring match and returns
// the first hit. Free-form seller input reuses close-enough existing tags
// instead of multiplying near-duplicates.
func (r *referenceRepository) FindIngredientByName(ctx context.Context, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := GetDB(ctx, r.db).
		Where("LOWER(nama) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("created_at ASC").
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *referenceRepository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	return GetDB(ctx, r.db).Create(ingredient).Error
}

func (r *referenceRepository) ListIngredients(ctx context.Context, page, limit int) ([]model.Ingredient, int64, error) {
	var items []model.Ingredient
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Ingredient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("nama ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *referenceRepository) FindDietClaimByName(ctx context.Context, name string) (*model.DietClaim, error) {
	var claim model.DietClaim
	err := GetDB(ctx, r.db).
		Where("LOWER(nama) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("created_at ASC").
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *referenceRepository) CreateDietClaim(ctx context.Context, claim *model.DietClaim) error {
	return GetDB(ctx, r.db).Create(claim).Error
}

func (r *referenceRepository) ListDietClaims(ctx context.Context, page, limit int) ([]model.DietClaim, int64, error) {
	var items []model.DietClaim
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.DietClaim{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("nama ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *referenceRepository) ReplaceMenuIngredients(ctx context.Context, menuID uuid.UUID, ingredientIDs []uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("menu_id = ?", menuID).Delete(&model.MenuIngredient{}).Error; err != nil {
		return err
	}
	for _, id := range ingredientIDs {
		row := model.MenuIngredient{MenuID: menuID, IngredientID: id}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *referenceRepository) ReplaceMenuDietClaims(ctx context.Context, menuID uuid.UUID, claimIDs []uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("menu_id = ?", menuID).Delete(&model.MenuDietClaim{}).Error; err != nil {
		return err
	}
	for _, id := range claimIDs {
		row := model.MenuDietClaim{MenuID: menuID, DietClaimID: id}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *referenceRepository) CountMenuIngredients(ctx context.Context, menuID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.MenuIngredient{}).Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}

func (r *referenceRepository) CountMenuDietClaims(ctx context.Context, menuID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.MenuDietClaim{}).Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}
