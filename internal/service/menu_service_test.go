package service

import (
	"context"
	"testing"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"
	"rasosehat-backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMenuFixture(t *testing.T, db *gorm.DB) MenuService {
	t.Helper()
	refs := repository.NewReferenceRepository(db)
	return NewMenuService(
		repository.NewMenuRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewCategoryRepository(db),
		NewPivotService(refs, repository.NewTransactionManager(db)),
		cache.NewMemory(),
		hydratorForTests(),
	)
}

func createApprovedRestaurant(t *testing.T, db *gorm.DB, owner *model.User) *model.Restaurant {
	t.Helper()
	return createRestaurant(t, db, func(r *model.Restaurant) {
		userID := owner.ID
		r.UserID = &userID
		r.Status = model.StatusApproved
	})
}

func TestMenuCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)

	ingredients := []interface{}{"Tempe", "Bayam"}
	claims := []interface{}{"tinggi protein"}
	view, err := svc.Create(ctx, seller.ID.String(), MenuPayload{
		Name:        "Gado-Gado Spesial",
		Price:       "25000",
		Ingredients: &ingredients,
		DietClaims:  &claims,
	})
	require.NoError(t, err)
	assert.Equal(t, "gado-gado-spesial", view.Slug)
	assert.Equal(t, model.StatusPending, view.Status)
	assert.Equal(t, "25000", view.Price.String())
	assert.Len(t, view.Ingredients, 2)
	assert.Len(t, view.DietClaims, 1)
}

func TestMenuCreateDerivesUniqueSlug(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)

	first, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "20000"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "22000"})
	require.NoError(t, err)

	assert.Equal(t, "gado-gado", first.Slug)
	assert.Equal(t, "gado-gado-2", second.Slug)
}

func TestMenuCreateNeedsApprovedRestaurant(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	createRestaurant(t, db, func(r *model.Restaurant) {
		userID := seller.ID
		r.UserID = &userID
	})

	_, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "20000"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMenuCreateRejectsBadPrice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)

	_, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "dua puluh ribu"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMenuUpdateOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)
	intruder := createUser(t, db, "Candra", "candra@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, intruder)

	created, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "20000"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, intruder.ID.String(), created.ID.String(), MenuPayload{Name: "Dicuri", Price: "1"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, seller.ID.String(), created.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "23000"})
	require.NoError(t, err)
	assert.Equal(t, "23000", updated.Price.String())
}

func TestMenuUpdateNilAssociationsLeaveAlone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)
	refs := repository.NewReferenceRepository(db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)

	ingredients := []interface{}{"Tempe"}
	created, err := svc.Create(ctx, seller.ID.String(), MenuPayload{
		Name:        "Gado-Gado",
		Price:       "20000",
		Ingredients: &ingredients,
	})
	require.NoError(t, err)

	// Nil association list means "leave as is".
	_, err = svc.Update(ctx, seller.ID.String(), created.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "21000"})
	require.NoError(t, err)
	count, err := refs.CountMenuIngredients(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// An explicit empty list clears.
	empty := []interface{}{}
	_, err = svc.Update(ctx, seller.ID.String(), created.ID.String(), MenuPayload{
		Name:        "Gado-Gado",
		Price:       "21000",
		Ingredients: &empty,
	})
	require.NoError(t, err)
	count, err = refs.CountMenuIngredients(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMenuGetBySlugCaches(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)

	created, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "20000"})
	require.NoError(t, err)

	first, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)

	// A direct write bypassing the service is invisible until invalidation.
	require.NoError(t, db.Model(&model.Menu{}).Where("id = ?", created.ID).Update("nama", "Diubah").Error)

	second, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
}

func TestMenuGetBySlugUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuFixture(t, db)

	_, err := svc.GetBySlug(context.Background(), "tidak-ada")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMenuSearchOnlyApproved(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	restaurant := createApprovedRestaurant(t, db, seller)

	pending := model.Menu{RestaurantID: restaurant.ID, Name: "Belum Tayang", Slug: "belum-tayang", Status: model.StatusPending}
	approved := model.Menu{RestaurantID: restaurant.ID, Name: "Sudah Tayang", Slug: "sudah-tayang", Status: model.StatusApproved}
	require.NoError(t, db.Create(&pending).Error)
	require.NoError(t, db.Create(&approved).Error)

	views, total, err := svc.Search(ctx, MenuSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "sudah-tayang", views[0].Slug)
}

func TestMenuSearchKeyword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	restaurant := createApprovedRestaurant(t, db, seller)

	for _, m := range []model.Menu{
		{RestaurantID: restaurant.ID, Name: "Gado-Gado", Slug: "gado-gado", Status: model.StatusApproved},
		{RestaurantID: restaurant.ID, Name: "Sop Buntut", Slug: "sop-buntut", Status: model.StatusApproved},
	} {
		menu := m
		require.NoError(t, db.Create(&menu).Error)
	}

	views, total, err := svc.Search(ctx, MenuSearchRequest{Keyword: "gado"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "Gado-Gado", views[0].Name)
}

func TestMenuDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newMenuFixture(t, db)

	seller := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	createApprovedRestaurant(t, db, seller)

	created, err := svc.Create(ctx, seller.ID.String(), MenuPayload{Name: "Gado-Gado", Price: "20000"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, seller.ID.String(), created.ID.String()))

	_, err = svc.GetBySlug(ctx, created.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}
