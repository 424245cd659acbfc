package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rasosehat-backend/internal/hydrate"
	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"
	"rasosehat-backend/pkg/cache"
	"rasosehat-backend/pkg/slug"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const menuCacheTTL = 5 * time.Minute

// --- DTOs ---

type MenuPayload struct {
	Name         string   `json:"nama" binding:"required"`
	Description  string   `json:"deskripsi"`
	Price        string   `json:"harga" binding:"required"`
	CategoryID   string   `json:"category_id"`
	Calories     *float64 `json:"kalori"`
	Protein      *float64 `json:"protein"`
	Sugar        *float64 `json:"gula"`
	Fat          *float64 `json:"lemak"`
	Fiber        *float64 `json:"serat"`
	SaturatedFat *float64 `json:"lemak_jenuh"`
	Carbohydrate *float64 `json:"karbohidrat"`
	Cholesterol  *float64 `json:"kolesterol"`
	Sodium       *float64 `json:"natrium"`
	StoredPath   string   `json:"stored_path"`
	Provider     string   `json:"provider"`
	// nil means "leave associations alone"; an empty list clears them.
	Ingredients *[]interface{} `json:"bahan"`
	DietClaims  *[]interface{} `json:"klaim_diet"`
}

type MenuSearchRequest struct {
	Keyword    string
	CategoryID string
	Page       int
	Limit      int
}

// MenuService carries the seller-side menu lifecycle plus the public read
// paths. Every read goes through the hydrator; the slug detail page is
// cached.
type MenuService interface {
	Create(ctx context.Context, userID string, req MenuPayload) (*hydrate.MenuView, error)
	Update(ctx context.Context, userID, menuID string, req MenuPayload) (*hydrate.MenuView, error)
	Delete(ctx context.Context, userID, menuID string) error
	GetBySlug(ctx context.Context, slugValue string) (*hydrate.MenuView, error)
	Search(ctx context.Context, req MenuSearchRequest) ([]hydrate.MenuView, int64, error)
	Mine(ctx context.Context, userID string, page, limit int) ([]hydrate.MenuView, int64, error)
	ListCategories(ctx context.Context) ([]model.MenuCategory, error)
}

type menuService struct {
	menus       repository.MenuRepository
	restaurants repository.RestaurantRepository
	categories  repository.CategoryRepository
	pivots      PivotService
	cache       cache.Cache
	hydrator    hydrate.Config
}

func NewMenuService(
	menus repository.MenuRepository,
	restaurants repository.RestaurantRepository,
	categories repository.CategoryRepository,
	pivots PivotService,
	cacheStore cache.Cache,
	hydrator hydrate.Config,
) MenuService {
	return &menuService{
		menus:       menus,
		restaurants: restaurants,
		categories:  categories,
		pivots:      pivots,
		cache:       cacheStore,
		hydrator:    hydrator,
	}
}

func (s *menuService) Create(ctx context.Context, userID string, req MenuPayload) (*hydrate.MenuView, error) {
	restaurant, err := s.ownRestaurant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if restaurant.Status != model.StatusApproved {
		return nil, fmt.Errorf("%w: restaurant is not approved yet", ErrForbidden)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: harga must be numeric", ErrValidation)
	}

	menuSlug, err := slug.Unique(req.Name, func(candidate string) (bool, error) {
		return s.menus.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to derive slug: %w", err)
	}

	menu := model.Menu{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Slug:         menuSlug,
		Description:  req.Description,
		Price:        price,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Sugar:        req.Sugar,
		Fat:          req.Fat,
		Fiber:        req.Fiber,
		SaturatedFat: req.SaturatedFat,
		Carbohydrate: req.Carbohydrate,
		Cholesterol:  req.Cholesterol,
		Sodium:       req.Sodium,
		StoredPath:   req.StoredPath,
		Provider:     req.Provider,
		Status:       model.StatusPending,
	}
	if req.CategoryID != "" {
		category, err := s.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown category", ErrValidation)
		}
		menu.CategoryID = &category.ID
	}

	if err := s.menus.Create(ctx, &menu); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	s.syncPivots(ctx, menu.ID, req)

	full, err := s.menus.GetByIDFull(ctx, menu.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to reload menu: %w", err)
	}
	view := s.hydrator.Menu(full)
	return &view, nil
}

func (s *menuService) Update(ctx context.Context, userID, menuID string, req MenuPayload) (*hydrate.MenuView, error) {
	menu, err := s.ownedMenu(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: harga must be numeric", ErrValidation)
	}

	menu.Name = req.Name
	menu.Description = req.Description
	menu.Price = price
	menu.Calories = req.Calories
	menu.Protein = req.Protein
	menu.Sugar = req.Sugar
	menu.Fat = req.Fat
	menu.Fiber = req.Fiber
	menu.SaturatedFat = req.SaturatedFat
	menu.Carbohydrate = req.Carbohydrate
	menu.Cholesterol = req.Cholesterol
	menu.Sodium = req.Sodium
	if req.StoredPath != "" {
		menu.StoredPath = req.StoredPath
		menu.Provider = req.Provider
	}
	if req.CategoryID != "" {
		category, err := s.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown category", ErrValidation)
		}
		menu.CategoryID = &category.ID
	}

	if err := s.menus.Update(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to update menu: %w", err)
	}

	s.syncPivots(ctx, menu.ID, req)
	s.invalidate(ctx, menu.Slug)

	full, err := s.menus.GetByIDFull(ctx, menu.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to reload menu: %w", err)
	}
	view := s.hydrator.Menu(full)
	return &view, nil
}

func (s *menuService) Delete(ctx context.Context, userID, menuID string) error {
	menu, err := s.ownedMenu(ctx, userID, menuID)
	if err != nil {
		return err
	}
	if err := s.menus.Delete(ctx, menuID); err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	s.invalidate(ctx, menu.Slug)
	return nil
}

func (s *menuService) GetBySlug(ctx context.Context, slugValue string) (*hydrate.MenuView, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, menuCacheKey(slugValue)); err == nil && ok {
			var view hydrate.MenuView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
		}
	}

	menu, err := s.menus.GetBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	view := s.hydrator.Menu(menu)
	if s.cache != nil {
		if encoded, err := json.Marshal(view); err == nil {
			if err := s.cache.Set(ctx, menuCacheKey(slugValue), string(encoded), menuCacheTTL); err != nil {
				logrus.WithField("slug", slugValue).WithError(err).Warn("menu cache write failed")
			}
		}
	}
	return &view, nil
}

// Search is the public browse path: only approved menus are visible.
func (s *menuService) Search(ctx context.Context, req MenuSearchRequest) ([]hydrate.MenuView, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	rows, total, err := s.menus.Search(ctx, repository.MenuFilter{
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		Status:     model.StatusApproved,
		Page:       req.Page,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search menus: %w", err)
	}
	return s.hydrator.Menus(rows), total, nil
}

func (s *menuService) Mine(ctx context.Context, userID string, page, limit int) ([]hydrate.MenuView, int64, error) {
	restaurant, err := s.ownRestaurant(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	rows, total, err := s.menus.ListByRestaurant(ctx, restaurant.ID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list menus: %w", err)
	}
	return s.hydrator.Menus(rows), total, nil
}

func (s *menuService) ListCategories(ctx context.Context) ([]model.MenuCategory, error) {
	return s.categories.List(ctx)
}

// --- helpers ---

func (s *menuService) ownRestaurant(ctx context.Context, userID string) (*model.Restaurant, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	restaurant, err := s.restaurants.CurrentForUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *menuService) ownedMenu(ctx context.Context, userID, menuID string) (*model.Menu, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	restaurant, err := s.ownRestaurant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if menu.RestaurantID != restaurant.ID {
		return nil, fmt.Errorf("%w: menu belongs to another restaurant", ErrForbidden)
	}
	return menu, nil
}

// syncPivots runs association replacement best-effort: a failed sync is
// logged and the menu write stands.
func (s *menuService) syncPivots(ctx context.Context, menuID uuid.UUID, req MenuPayload) {
	if req.Ingredients != nil {
		if err := s.pivots.SyncAssociations(ctx, menuID, KindIngredient, *req.Ingredients); err != nil {
			logrus.WithFields(logrus.Fields{"menu_id": menuID, "kind": KindIngredient}).
				WithError(err).Warn("pivot sync failed")
		}
	}
	if req.DietClaims != nil {
		if err := s.pivots.SyncAssociations(ctx, menuID, KindDietClaim, *req.DietClaims); err != nil {
			logrus.WithFields(logrus.Fields{"menu_id": menuID, "kind": KindDietClaim}).
				WithError(err).Warn("pivot sync failed")
		}
	}
}

func (s *menuService) invalidate(ctx context.Context, slugValue string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, menuCacheKey(slugValue)); err != nil {
		logrus.WithField("slug", slugValue).WithError(err).Warn("menu cache invalidation failed")
	}
}
