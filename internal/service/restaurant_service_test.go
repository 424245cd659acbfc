package service

import (
	"context"
	"testing"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRestaurantFixture(t *testing.T, db *gorm.DB) RestaurantService {
	t.Helper()
	return NewRestaurantService(
		repository.NewRestaurantRepository(db),
		repository.NewVerificationRepository(db),
		hydratorForTests(),
	)
}

func TestRestaurantCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newRestaurantFixture(t, db)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)

	view, err := svc.Create(ctx, user.ID.String(), CreateRestaurantRequest{Name: "Warung Sehat", Address: "Jl. Melati 1"})
	require.NoError(t, err)
	assert.Equal(t, "Warung Sehat", view.Name)
	assert.Equal(t, model.StatusPending, view.Status)

	// A second restaurant for the same user is refused.
	_, err = svc.Create(ctx, user.ID.String(), CreateRestaurantRequest{Name: "Warung Kedua", Address: "Jl. Melati 2"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRestaurantProfileAndDocumentsSteps(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newRestaurantFixture(t, db)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	_, err := svc.Create(ctx, user.ID.String(), CreateRestaurantRequest{Name: "Warung Sehat", Address: "Jl. Melati 1"})
	require.NoError(t, err)

	lat := -6.2
	view, err := svc.UpdateProfile(ctx, user.ID.String(), UpdateRestaurantProfileRequest{
		Description:   "Masakan rumahan rendah gula",
		OwnerName:     "Budi",
		OwnerEmail:    "budi@contoh.id",
		Latitude:      &lat,
		SalesChannels: []string{"gofood", "grabfood"},
		HealthFocus:   []string{"rendah gula"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gofood", "grabfood"}, view.SalesChannels)
	assert.Equal(t, []string{"rendah gula"}, view.HealthFocus)
	require.NotNil(t, view.Latitude)

	view, err = svc.UpdateDocuments(ctx, user.ID.String(), UpdateRestaurantDocumentsRequest{
		ProfilePhoto: "profil.jpg",
		IDPhotos:     []string{"ktp.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "profil.jpg", view.Documents.ProfilePhoto)
	assert.Equal(t, []string{"ktp.jpg"}, view.Documents.IDPhotos)
}

func TestRestaurantSubmitRecordsHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newRestaurantFixture(t, db)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	created, err := svc.Create(ctx, user.ID.String(), CreateRestaurantRequest{Name: "Warung Sehat", Address: "Jl. Melati 1"})
	require.NoError(t, err)

	view, err := svc.Submit(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, view.Status)

	// The owner-initiated transition carries no acting admin.
	var record model.RestaurantVerification
	require.NoError(t, db.First(&record, "restaurant_id = ?", created.ID).Error)
	assert.Nil(t, record.AdminID)
	assert.Equal(t, model.StatusPending, record.Status)
}

func TestRestaurantMineWithoutRestaurant(t *testing.T) {
	db := newTestDB(t)
	svc := newRestaurantFixture(t, db)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	_, err := svc.Mine(context.Background(), user.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantListByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newRestaurantFixture(t, db)

	createRestaurant(t, db, nil)
	createRestaurant(t, db, func(r *model.Restaurant) {
		r.Name = "Warung Kedua"
		r.Status = model.StatusApproved
	})

	views, total, err := svc.ListByStatus(ctx, model.StatusPending, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, model.StatusPending, views[0].Status)

	_, total, err = svc.ListByStatus(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
