package repository

import (
	"context"

	"rasosehat-backend/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository persists in-app notifications. Addressee matching
// covers both the linked user id and the raw email column, because workflow
// notifications may target owners whose account is not linked yet.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListForAddressee(ctx context.Context, userID, email string, page, limit int) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context, userID, email string) (int64, error)
	// MarkRead flips the read flag if the caller is an addressee. Returns the
	// number of rows affected; zero means not found or not addressed to caller.
	MarkRead(ctx context.Context, id, userID, email string) (int64, error)
	MarkAllRead(ctx context.Context, userID, email string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return GetDB(ctx, r.db).Create(notification).Error
}

func addresseeClause(q *gorm.DB, userID, email string) *gorm.DB {
	switch {
	case userID != "" && email != "":
		return q.Where("user_id = ? OR email = ?", userID, email)
	case userID != "":
		return q.Where("user_id = ?", userID)
	default:
		return q.Where("email = ?", email)
	}
}

func (r *notificationRepository) ListForAddressee(ctx context.Context, userID, email string, page, limit int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := GetDB(ctx, r.db)
	if err := addresseeClause(db.Model(&model.Notification{}), userID, email).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := addresseeClause(db, userID, email).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID, email string) (int64, error) {
	var count int64
	q := addresseeClause(GetDB(ctx, r.db).Model(&model.Notification{}), userID, email)
	err := q.Where("read = ?", false).Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID, email string) (int64, error) {
	q := GetDB(ctx, r.db).Model(&model.Notification{}).Where("id = ?", id)
	result := addresseeClause(q, userID, email).Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID, email string) (int64, error) {
	q := addresseeClause(GetDB(ctx, r.db).Model(&model.Notification{}), userID, email)
	result := q.Where("read = ?", false).Update("read", true)
	return result.RowsAffected, result.Error
}
