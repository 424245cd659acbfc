package service

import (
	"context"
	"testing"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyRequiresAddressee(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	_, err := svc.Notify(context.Background(), NotifyInput{
		Type:    model.NotificationRestaurantVerified,
		Title:   "Restoran disetujui",
		Message: "Selamat",
	})
	assert.ErrorIs(t, err, ErrValidation)

	var total int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestNotifyEmailOnlyAddressee(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	created, err := svc.Notify(context.Background(), NotifyInput{
		Email:   "siti@contoh.id",
		Type:    model.NotificationRestaurantVerified,
		Title:   "Restoran disetujui",
		Message: "Selamat",
	})
	require.NoError(t, err)
	assert.Nil(t, created.UserID)
	assert.Equal(t, "siti@contoh.id", created.Email)
}

func TestNotificationReadFlow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	other := createUser(t, db, "Siti", "siti@contoh.id", model.RoleBuyer)

	userID := user.ID
	created, err := svc.Notify(ctx, NotifyInput{
		UserID:  &userID,
		Type:    model.NotificationMenuVerified,
		Title:   "Menu disetujui",
		Message: "Menu Anda tayang",
	})
	require.NoError(t, err)

	unread, err := svc.UnreadCount(ctx, user.ID.String(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// Another user cannot mark someone else's notification read.
	err = svc.MarkRead(ctx, created.ID.String(), other.ID.String(), other.Email)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.MarkRead(ctx, created.ID.String(), user.ID.String(), user.Email))

	unread, err = svc.UnreadCount(ctx, user.ID.String(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	userID := user.ID
	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, NotifyInput{
			UserID:  &userID,
			Type:    model.NotificationMenuVerified,
			Title:   "Menu disetujui",
			Message: "Menu Anda tayang",
		})
		require.NoError(t, err)
	}

	affected, err := svc.MarkAllRead(ctx, user.ID.String(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	unread, err := svc.UnreadCount(ctx, user.ID.String(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestNotificationListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	user := createUser(t, db, "Budi", "budi@contoh.id", model.RoleBuyer)
	userID := user.ID
	titles := []string{"satu", "dua", "tiga"}
	for _, title := range titles {
		_, err := svc.Notify(ctx, NotifyInput{
			UserID:  &userID,
			Type:    model.NotificationMenuVerified,
			Title:   title,
			Message: title,
		})
		require.NoError(t, err)
	}

	items, total, err := svc.List(ctx, user.ID.String(), user.Email, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "tiga", items[0].Title)
	assert.Equal(t, "dua", items[1].Title)
}
