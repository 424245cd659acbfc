package service

import (
	"context"
	"encoding/json"
	"fmt"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotifyInput addresses an in-app notification. At least one of UserID and
// Email must be set; an unaddressed notification would be unreadable by
// anyone, so it is rejected up front.
type NotifyInput struct {
	UserID  *uuid.UUID
	Email   string
	Type    string
	Title   string
	Message string
	Payload interface{}
}

// Pusher delivers a realtime copy of a notification to the addressee's open
// connections. The websocket hub satisfies this.
type Pusher interface {
	Push(userID string, payload []byte)
}

// NotificationService writes and reads in-app notifications.
type NotificationService interface {
	Notify(ctx context.Context, input NotifyInput) (*model.Notification, error)
	List(ctx context.Context, userID, email string, page, limit int) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context, userID, email string) (int64, error)
	MarkRead(ctx context.Context, id, userID, email string) error
	MarkAllRead(ctx context.Context, userID, email string) (int64, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher // optional
}

func NewNotificationService(repo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{repo: repo, pusher: pusher}
}

func (s *notificationService) Notify(ctx context.Context, input NotifyInput) (*model.Notification, error) {
	if input.UserID == nil && input.Email == "" {
		return nil, fmt.Errorf("%w: notification needs a user id or an email addressee", ErrValidation)
	}
	if input.Type == "" || input.Title == "" {
		return nil, fmt.Errorf("%w: notification type and title are required", ErrValidation)
	}

	payload := ""
	if input.Payload != nil {
		encoded, err := json.Marshal(input.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: payload is not serializable", ErrValidation)
		}
		payload = string(encoded)
	}

	notification := model.Notification{
		UserID:  input.UserID,
		Email:   input.Email,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
		Payload: payload,
	}
	if err := s.repo.Create(ctx, &notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	// Realtime push is an enrichment on top of the stored row.
	if s.pusher != nil && input.UserID != nil {
		if encoded, err := json.Marshal(notification); err == nil {
			s.pusher.Push(input.UserID.String(), encoded)
		} else {
			logrus.WithError(err).WithField("notification_id", notification.ID).
				Warn("failed to encode notification for push")
		}
	}

	return &notification, nil
}

func (s *notificationService) List(ctx context.Context, userID, email string, page, limit int) ([]model.Notification, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListForAddressee(ctx, userID, email, page, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID, email string) (int64, error) {
	return s.repo.UnreadCount(ctx, userID, email)
}

// MarkRead flips the read flag when the caller is an addressee of the
// notification. A zero-affected-rows result surfaces as not-found; the
// caller cannot tell whether the row is missing or belongs to someone else.
func (s *notificationService) MarkRead(ctx context.Context, id, userID, email string) error {
	affected, err := s.repo.MarkRead(ctx, id, userID, email)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: notification", ErrNotFound)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID, email string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, email)
}
