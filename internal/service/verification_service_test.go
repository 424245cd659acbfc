package service

import (
	"context"
	"testing"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDecision(t *testing.T) {
	approveTokens := []string{"approve", "approved", "accept", "disetujui", "setujui", "terima", " Disetujui ", "APPROVE"}
	for _, token := range approveTokens {
		status, err := NormalizeDecision(token)
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, model.StatusApproved, status, "token %q", token)
	}

	rejectTokens := []string{"reject", "rejected", "ditolak", "tolak", "Tolak"}
	for _, token := range rejectTokens {
		status, err := NormalizeDecision(token)
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, model.StatusRejected, status, "token %q", token)
	}

	for _, token := range []string{"", "maybe", "menunggu", "ok"} {
		_, err := NormalizeDecision(token)
		assert.ErrorIs(t, err, ErrValidation, "token %q", token)
	}
}

func TestDecideRestaurantApprove(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	owner := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	restaurant := createRestaurant(t, db, func(r *model.Restaurant) {
		userID := owner.ID
		r.UserID = &userID
	})

	view, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "disetujui", "lengkap", admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, view.Status)
	assert.Equal(t, "lengkap", view.AdminNote)

	var stored model.Restaurant
	require.NoError(t, db.First(&stored, "id = ?", restaurant.ID).Error)
	assert.Equal(t, model.StatusApproved, stored.Status)

	// Approval promotes the owner to seller.
	var promoted model.User
	require.NoError(t, db.First(&promoted, "id = ?", owner.ID).Error)
	assert.Equal(t, model.RoleSeller, promoted.Role)

	// Exactly one audit row, attributed to the deciding admin.
	count, err := repository.NewVerificationRepository(db).CountForRestaurant(ctx, restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var record model.RestaurantVerification
	require.NoError(t, db.First(&record, "restaurant_id = ?", restaurant.ID).Error)
	require.NotNil(t, record.AdminID)
	assert.Equal(t, admin.ID, *record.AdminID)
	assert.Equal(t, model.StatusApproved, record.Status)
	assert.Equal(t, "lengkap", record.Note)

	// The owner got an in-app notification.
	var notifications int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", owner.ID).Count(&notifications).Error)
	assert.Equal(t, int64(1), notifications)
}

func TestDecideRestaurantApproveRepairsOwnerLink(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	owner := createUser(t, db, "Siti", "siti@contoh.id", model.RoleBuyer)
	// Legacy row: no account link, only the owner email.
	restaurant := createRestaurant(t, db, func(r *model.Restaurant) {
		r.UserID = nil
		r.OwnerEmail = "siti@contoh.id"
	})

	_, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "approve", "", admin.ID.String())
	require.NoError(t, err)

	var stored model.Restaurant
	require.NoError(t, db.First(&stored, "id = ?", restaurant.ID).Error)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, owner.ID, *stored.UserID)

	var promoted model.User
	require.NoError(t, db.First(&promoted, "id = ?", owner.ID).Error)
	assert.Equal(t, model.RoleSeller, promoted.Role)
}

func TestDecideRestaurantReject(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	owner := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	restaurant := createRestaurant(t, db, func(r *model.Restaurant) {
		userID := owner.ID
		r.UserID = &userID
	})

	view, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "tolak", "dokumen tidak terbaca", admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, view.Status)

	// Rejection never promotes.
	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", owner.ID).Error)
	assert.Equal(t, model.RoleBuyer, stored.Role)

	count, err := repository.NewVerificationRepository(db).CountForRestaurant(ctx, restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDecideRestaurantInvalidDecisionTouchesNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	restaurant := createRestaurant(t, db, nil)

	_, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "mungkin", "", admin.ID.String())
	assert.ErrorIs(t, err, ErrValidation)

	var stored model.Restaurant
	require.NoError(t, db.First(&stored, "id = ?", restaurant.ID).Error)
	assert.Equal(t, model.StatusPending, stored.Status)

	count, err := repository.NewVerificationRepository(db).CountForRestaurant(ctx, restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDecideRestaurantUnknownID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)

	_, err := svc.DecideRestaurant(ctx, uuid.NewString(), "approve", "", admin.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	var records int64
	require.NoError(t, db.Model(&model.RestaurantVerification{}).Count(&records).Error)
	assert.Equal(t, int64(0), records)
}

func TestDecideRestaurantTwiceAppendsTwoAuditRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	owner := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	restaurant := createRestaurant(t, db, func(r *model.Restaurant) {
		userID := owner.ID
		r.UserID = &userID
	})

	_, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "approve", "", admin.ID.String())
	require.NoError(t, err)
	view, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "reject", "ditinjau ulang", admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, view.Status)

	count, err := repository.NewVerificationRepository(db).CountForRestaurant(ctx, restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDecideMenuApprove(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	owner := createUser(t, db, "Budi", "budi@contoh.id", model.RoleSeller)
	restaurant := createRestaurant(t, db, func(r *model.Restaurant) {
		userID := owner.ID
		r.UserID = &userID
		r.Status = model.StatusApproved
	})

	menu := model.Menu{
		RestaurantID: restaurant.ID,
		Name:         "Gado-Gado",
		Slug:         "gado-gado",
		Status:       model.StatusPending,
	}
	require.NoError(t, db.Create(&menu).Error)

	view, err := svc.DecideMenu(ctx, menu.ID.String(), "terima", "", admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, view.Status)

	var stored model.Menu
	require.NoError(t, db.First(&stored, "id = ?", menu.ID).Error)
	assert.Equal(t, model.StatusApproved, stored.Status)

	count, err := repository.NewVerificationRepository(db).CountForMenu(ctx, menu.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The restaurant owner is notified about the menu decision.
	var notifications int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", owner.ID).Count(&notifications).Error)
	assert.Equal(t, int64(1), notifications)
}

func TestDecideMenuUnknownID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)

	_, err := svc.DecideMenu(ctx, uuid.NewString(), "approve", "", admin.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newVerificationFixture(t, db)

	admin := createUser(t, db, "Admin", "admin@rasosehat.id", model.RoleAdmin)
	owner := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	restaurant := createRestaurant(t, db, func(r *model.Restaurant) {
		userID := owner.ID
		r.UserID = &userID
	})

	_, err := svc.DecideRestaurant(ctx, restaurant.ID.String(), "reject", "pertama", admin.ID.String())
	require.NoError(t, err)
	_, err = svc.DecideRestaurant(ctx, restaurant.ID.String(), "approve", "kedua", admin.ID.String())
	require.NoError(t, err)

	records, total, err := svc.RestaurantHistory(ctx, restaurant.ID.String(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)
	assert.Equal(t, "kedua", records[0].Note)
	assert.Equal(t, "pertama", records[1].Note)
}
