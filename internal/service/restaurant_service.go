package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rasosehat-backend/internal/hydrate"
	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateRestaurantRequest struct {
	Name    string `json:"nama" binding:"required"`
	Address string `json:"alamat" binding:"required"`
}

type UpdateRestaurantProfileRequest struct {
	Description    string   `json:"deskripsi"`
	OwnerName      string   `json:"nama_pemilik"`
	OwnerEmail     string   `json:"email_pemilik" binding:"omitempty,email"`
	OwnerPhone     string   `json:"telepon_pemilik"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	OpeningHours   string   `json:"jam_operasional"`
	SalesChannels  []string `json:"kanal_penjualan"`
	HealthFocus    []string `json:"fokus_kesehatan"`
	CookingMethods []string `json:"metode_masak"`
}

type UpdateRestaurantDocumentsRequest struct {
	ProfilePhoto      string   `json:"foto_profil"`
	IDPhotos          []string `json:"foto_ktp"`
	TaxDocuments      []string `json:"dokumen_pajak"`
	BusinessDocuments []string `json:"dokumen_usaha"`
	StoredPath        string   `json:"stored_path"`
	Provider          string   `json:"provider"`
}

// RestaurantService carries the seller-side lifecycle: step-1 skeleton,
// step-2 profile, step-3 documents, then explicit submission into the
// verification queue.
type RestaurantService interface {
	Create(ctx context.Context, userID string, req CreateRestaurantRequest) (*hydrate.RestaurantView, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateRestaurantProfileRequest) (*hydrate.RestaurantView, error)
	UpdateDocuments(ctx context.Context, userID string, req UpdateRestaurantDocumentsRequest) (*hydrate.RestaurantView, error)
	Submit(ctx context.Context, userID string) (*hydrate.RestaurantView, error)
	Mine(ctx context.Context, userID string) (*hydrate.RestaurantView, error)
	GetByID(ctx context.Context, id string) (*hydrate.RestaurantView, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]hydrate.RestaurantView, int64, error)
}

type restaurantService struct {
	restaurants   repository.RestaurantRepository
	verifications repository.VerificationRepository
	hydrator      hydrate.Config
}

func NewRestaurantService(
	restaurants repository.RestaurantRepository,
	verifications repository.VerificationRepository,
	hydrator hydrate.Config,
) RestaurantService {
	return &restaurantService{
		restaurants:   restaurants,
		verifications: verifications,
		hydrator:      hydrator,
	}
}

func (s *restaurantService) Create(ctx context.Context, userID string, req CreateRestaurantRequest) (*hydrate.RestaurantView, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	// One restaurant per user: creation is refused when one already exists.
	if _, err := s.restaurants.CurrentForUser(ctx, ownerID); err == nil {
		return nil, fmt.Errorf("%w: user already has a restaurant", ErrValidation)
	}

	restaurant := model.Restaurant{
		UserID:  &ownerID,
		Name:    req.Name,
		Address: req.Address,
		Status:  model.StatusPending,
	}
	if err := s.restaurants.Create(ctx, &restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	view := s.hydrator.Restaurant(&restaurant)
	return &view, nil
}

func (s *restaurantService) UpdateProfile(ctx context.Context, userID string, req UpdateRestaurantProfileRequest) (*hydrate.RestaurantView, error) {
	restaurant, err := s.currentFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurant.Description = req.Description
	restaurant.OwnerName = req.OwnerName
	restaurant.OwnerEmail = req.OwnerEmail
	restaurant.OwnerPhone = req.OwnerPhone
	restaurant.Latitude = req.Latitude
	restaurant.Longitude = req.Longitude
	restaurant.OpeningHours = req.OpeningHours
	restaurant.SalesChannels = marshalOrEmpty(req.SalesChannels)
	restaurant.HealthFocus = marshalOrEmpty(req.HealthFocus)
	restaurant.CookingMethods = marshalOrEmpty(req.CookingMethods)

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to update restaurant profile: %w", err)
	}

	view := s.hydrator.Restaurant(restaurant)
	return &view, nil
}

func (s *restaurantService) UpdateDocuments(ctx context.Context, userID string, req UpdateRestaurantDocumentsRequest) (*hydrate.RestaurantView, error) {
	restaurant, err := s.currentFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	bundle := hydrate.DocumentsView{
		ProfilePhoto:      req.ProfilePhoto,
		IDPhotos:          req.IDPhotos,
		TaxDocuments:      req.TaxDocuments,
		BusinessDocuments: req.BusinessDocuments,
	}
	encoded, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("%w: documents bundle is not serializable", ErrValidation)
	}
	restaurant.Documents = string(encoded)
	if req.StoredPath != "" {
		restaurant.StoredPath = req.StoredPath
		restaurant.Provider = req.Provider
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to update restaurant documents: %w", err)
	}

	view := s.hydrator.Restaurant(restaurant)
	return &view, nil
}

// Submit moves the restaurant (back) into the verification queue. A record
// with no acting admin marks the owner-initiated transition in the history.
func (s *restaurantService) Submit(ctx context.Context, userID string) (*hydrate.RestaurantView, error) {
	restaurant, err := s.currentFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurant.Status = model.StatusPending
	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to submit restaurant: %w", err)
	}

	record := model.RestaurantVerification{
		RestaurantID: restaurant.ID,
		Status:       model.StatusPending,
	}
	if err := s.verifications.CreateRestaurantRecord(ctx, &record); err != nil {
		logrus.WithFields(logrus.Fields{
			"component":     "restaurant",
			"restaurant_id": restaurant.ID,
		}).WithError(err).Warn("failed to record submission")
	}

	view := s.hydrator.Restaurant(restaurant)
	return &view, nil
}

func (s *restaurantService) Mine(ctx context.Context, userID string) (*hydrate.RestaurantView, error) {
	restaurant, err := s.currentFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := s.hydrator.Restaurant(restaurant)
	return &view, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id string) (*hydrate.RestaurantView, error) {
	restaurant, err := s.restaurants.GetByIDWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	view := s.hydrator.Restaurant(restaurant)
	return &view, nil
}

func (s *restaurantService) ListByStatus(ctx context.Context, status string, page, limit int) ([]hydrate.RestaurantView, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	rows, total, err := s.restaurants.ListByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return s.hydrator.Restaurants(rows), total, nil
}

func (s *restaurantService) currentFor(ctx context.Context, userID string) (*model.Restaurant, error) {
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

func marshalOrEmpty(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
