package service

import (
	"context"
	"errors"
	"fmt"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"
	"rasosehat-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"komentar"`
}

// ReviewService lets buyers rate approved menus and keeps the menu's
// aggregate rating in sync.
type ReviewService interface {
	Create(ctx context.Context, userID, menuID string, req CreateReviewRequest) (*model.Review, error)
	ListByMenu(ctx context.Context, menuID string, page, limit int) ([]model.Review, int64, error)
}

type reviewService struct {
	reviews       repository.ReviewRepository
	menus         repository.MenuRepository
	restaurants   repository.RestaurantRepository
	notifications NotificationService
	cache         cache.Cache
}

func NewReviewService(
	reviews repository.ReviewRepository,
	menus repository.MenuRepository,
	restaurants repository.RestaurantRepository,
	notifications NotificationService,
	cacheStore cache.Cache,
) ReviewService {
	return &reviewService{
		reviews:       reviews,
		menus:         menus,
		restaurants:   restaurants,
		notifications: notifications,
		cache:         cacheStore,
	}
}

func (s *reviewService) Create(ctx context.Context, userID, menuID string, req CreateReviewRequest) (*model.Review, error) {
	reviewerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if menu.Status != model.StatusApproved {
		return nil, fmt.Errorf("%w: menu is not open for reviews", ErrValidation)
	}

	review := model.Review{
		MenuID:  menu.ID,
		UserID:  reviewerID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Aggregate recomputation and the seller notification are enrichment on
	// top of the stored review.
	if avg, count, err := s.reviews.AggregateForMenu(ctx, menu.ID); err != nil {
		logrus.WithField("menu_id", menu.ID).WithError(err).Warn("failed to recompute menu rating")
	} else if err := s.menus.UpdateAggregates(ctx, menu.ID, avg, int(count)); err != nil {
		logrus.WithField("menu_id", menu.ID).WithError(err).Warn("failed to store menu rating")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, menuCacheKey(menu.Slug)); err != nil {
			logrus.WithField("slug", menu.Slug).WithError(err).Warn("menu cache invalidation failed")
		}
	}

	s.notifySeller(ctx, menu, req.Rating)

	return &review, nil
}

func (s *reviewService) ListByMenu(ctx context.Context, menuID string, page, limit int) ([]model.Review, int64, error) {
	id, err := uuid.Parse(menuID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid menu id", ErrValidation)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.reviews.ListByMenu(ctx, id, page, limit)
}

func (s *reviewService) notifySeller(ctx context.Context, menu *model.Menu, rating int) {
	restaurant, err := s.restaurants.GetByID(ctx, menu.RestaurantID.String())
	if err != nil || restaurant.UserID == nil {
		return
	}
	ownerID := *restaurant.UserID
	_, err = s.notifications.Notify(ctx, NotifyInput{
		UserID:  &ownerID,
		Type:    model.NotificationMenuReviewed,
		Title:   "Ulasan baru untuk " + menu.Name,
		Message: fmt.Sprintf("Menu %s mendapat ulasan baru dengan rating %d.", menu.Name, rating),
		Payload: map[string]interface{}{"menu_id": menu.ID, "rating": rating},
	})
	if err != nil {
		logrus.WithField("menu_id", menu.ID).WithError(err).Warn("failed to notify seller of review")
	}
}
