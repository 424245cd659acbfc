package service

import (
	"context"
	"fmt"
	"strings"

	"rasosehat-backend/internal/hydrate"
	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"
	"rasosehat-backend/pkg/cache"
	"rasosehat-backend/pkg/mailer"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// decisionTokens maps every accepted input token to the canonical stored
// status. Extending the synonym set means adding a row here, nothing else.
var decisionTokens = map[string]string{
	"approve":   model.StatusApproved,
	"approved":  model.StatusApproved,
	"accept":    model.StatusApproved,
	"disetujui": model.StatusApproved,
	"setujui":   model.StatusApproved,
	"terima":    model.StatusApproved,
	"reject":    model.StatusRejected,
	"rejected":  model.StatusRejected,
	"ditolak":   model.StatusRejected,
	"tolak":     model.StatusRejected,
}

// NormalizeDecision resolves a caller-supplied decision token to the
// canonical status, case-insensitively.
func NormalizeDecision(token string) (string, error) {
	status, ok := decisionTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: unknown decision %q", ErrValidation, token)
	}
	return status, nil
}

// VerificationService runs the admin approval workflow for restaurants and
// menus. The status transition is the only effect with strict consistency;
// every post-decision side effect (audit, role promotion, link repair,
// notification, email, cache invalidation) runs in its own failure boundary
// and can never roll the transition back.
type VerificationService interface {
	DecideRestaurant(ctx context.Context, id, decision, note, adminID string) (*hydrate.RestaurantView, error)
	DecideMenu(ctx context.Context, id, decision, note, adminID string) (*hydrate.MenuView, error)
	RestaurantHistory(ctx context.Context, restaurantID string, page, limit int) ([]model.RestaurantVerification, int64, error)
	MenuHistory(ctx context.Context, menuID string, page, limit int) ([]model.MenuVerification, int64, error)
}

type verificationService struct {
	restaurants   repository.RestaurantRepository
	menus         repository.MenuRepository
	users         repository.UserRepository
	verifications repository.VerificationRepository
	notifications NotificationService
	mail          mailer.Mailer
	cache         cache.Cache
	hydrator      hydrate.Config
}

func NewVerificationService(
	restaurants repository.RestaurantRepository,
	menus repository.MenuRepository,
	users repository.UserRepository,
	verifications repository.VerificationRepository,
	notifications NotificationService,
	mail mailer.Mailer,
	cacheStore cache.Cache,
	hydrator hydrate.Config,
) VerificationService {
	return &verificationService{
		restaurants:   restaurants,
		menus:         menus,
		users:         users,
		verifications: verifications,
		notifications: notifications,
		mail:          mail,
		cache:         cacheStore,
		hydrator:      hydrator,
	}
}

// sideEffect is one post-decision task. Each runs in its own boundary:
// a failure is logged and the next task still runs.
type sideEffect struct {
	name string
	run  func() error
}

func runSideEffects(entity string, id string, effects []sideEffect) {
	for _, effect := range effects {
		if err := effect.run(); err != nil {
			logrus.WithFields(logrus.Fields{
				"component": "verification",
				"entity":    entity,
				"entity_id": id,
				"task":      effect.name,
			}).WithError(err).Warn("post-decision side effect failed")
		}
	}
}

func (s *verificationService) DecideRestaurant(ctx context.Context, id, decision, note, adminID string) (*hydrate.RestaurantView, error) {
	status, err := NormalizeDecision(decision)
	if err != nil {
		return nil, err
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid admin id", ErrValidation)
	}

	// Primary mutation. Some deployments predate the admin-note column, so a
	// failed full update is retried with the minimal field set.
	fields := map[string]interface{}{"status": status}
	if note != "" {
		fields["admin_note"] = note
	}
	affected, err := s.restaurants.UpdateFields(ctx, id, fields)
	if err != nil {
		affected, err = s.restaurants.UpdateFields(ctx, id, map[string]interface{}{"status": status})
		if err != nil {
			return nil, fmt.Errorf("failed to update restaurant status: %w", err)
		}
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
	}

	refreshed, err := s.restaurants.GetByIDWithOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload restaurant: %w", err)
	}

	effects := []sideEffect{
		{name: "audit", run: func() error {
			record := model.RestaurantVerification{
				RestaurantID: refreshed.ID,
				AdminID:      &adminUUID,
				Status:       status,
				Note:         note,
			}
			return s.verifications.CreateRestaurantRecord(ctx, &record)
		}},
	}

	approved := status == model.StatusApproved
	var owner *model.User
	if approved {
		effects = append(effects, sideEffect{name: "promote_owner", run: func() error {
			resolved, err := s.resolveOwner(ctx, refreshed)
			if err != nil {
				return err
			}
			owner = resolved
			if owner.Role != model.RoleSeller && owner.Role != model.RoleAdmin {
				if err := s.users.UpdateRole(ctx, owner.ID.String(), model.RoleSeller); err != nil {
					return fmt.Errorf("failed to promote owner: %w", err)
				}
			}
			if refreshed.UserID == nil || *refreshed.UserID != owner.ID {
				if err := s.restaurants.UpdateOwnerLink(ctx, id, owner.ID); err != nil {
					return fmt.Errorf("failed to repair owner link: %w", err)
				}
			}
			return nil
		}})
	} else if refreshed.User != nil {
		owner = refreshed.User
	}

	effects = append(effects,
		sideEffect{name: "notify", run: func() error {
			return s.notifyOwner(ctx, owner, refreshed.OwnerEmail, model.NotificationRestaurantVerified,
				"Restoran", refreshed.Name, approved, note, map[string]interface{}{
					"restaurant_id": refreshed.ID,
					"status":        status,
				})
		}},
		sideEffect{name: "email", run: func() error {
			return s.emailOwner(owner, refreshed.OwnerEmail, "Restoran", refreshed.Name, approved, note)
		}},
	)

	runSideEffects("restaurant", id, effects)

	// Reload once more so a repaired owner link is reflected in the response.
	if refreshed, err = s.restaurants.GetByIDWithOwner(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to reload restaurant: %w", err)
	}

	view := s.hydrator.Restaurant(refreshed)
	return &view, nil
}

func (s *verificationService) DecideMenu(ctx context.Context, id, decision, note, adminID string) (*hydrate.MenuView, error) {
	status, err := NormalizeDecision(decision)
	if err != nil {
		return nil, err
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid admin id", ErrValidation)
	}

	affected, err := s.menus.UpdateFields(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to update menu status: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: menu", ErrNotFound)
	}

	refreshed, err := s.menus.GetByIDFull(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload menu: %w", err)
	}

	approved := status == model.StatusApproved
	effects := []sideEffect{
		{name: "audit", run: func() error {
			record := model.MenuVerification{
				MenuID:  refreshed.ID,
				AdminID: &adminUUID,
				Status:  status,
				Note:    note,
			}
			return s.verifications.CreateMenuRecord(ctx, &record)
		}},
		{name: "notify", run: func() error {
			owner, ownerEmail := s.menuOwner(ctx, refreshed)
			return s.notifyOwner(ctx, owner, ownerEmail, model.NotificationMenuVerified,
				"Menu", refreshed.Name, approved, note, map[string]interface{}{
					"menu_id": refreshed.ID,
					"slug":    refreshed.Slug,
					"status":  status,
				})
		}},
		{name: "email", run: func() error {
			owner, ownerEmail := s.menuOwner(ctx, refreshed)
			return s.emailOwner(owner, ownerEmail, "Menu", refreshed.Name, approved, note)
		}},
		{name: "cache_invalidate", run: func() error {
			if s.cache == nil {
				return nil
			}
			return s.cache.Delete(ctx, menuCacheKey(refreshed.Slug))
		}},
	}

	runSideEffects("menu", id, effects)

	view := s.hydrator.Menu(refreshed)
	return &view, nil
}

// resolveOwner finds the user behind a restaurant: the linked id first, then
// the owner email, phone, and exact name, in that priority order.
func (s *verificationService) resolveOwner(ctx context.Context, restaurant *model.Restaurant) (*model.User, error) {
	if restaurant.UserID != nil {
		if user, err := s.users.GetByID(ctx, restaurant.UserID.String()); err == nil {
			return user, nil
		}
	}
	if restaurant.OwnerEmail != "" {
		if user, err := s.users.GetByEmail(ctx, restaurant.OwnerEmail); err == nil {
			return user, nil
		}
	}
	if restaurant.OwnerPhone != "" {
		if user, err := s.users.GetByPhone(ctx, restaurant.OwnerPhone); err == nil {
			return user, nil
		}
	}
	if restaurant.OwnerName != "" {
		if user, err := s.users.GetByName(ctx, restaurant.OwnerName); err == nil {
			return user, nil
		}
	}
	return nil, fmt.Errorf("owner not resolvable")
}

func (s *verificationService) menuOwner(ctx context.Context, menu *model.Menu) (*model.User, string) {
	if menu.Restaurant == nil {
		return nil, ""
	}
	if menu.Restaurant.UserID != nil {
		if user, err := s.users.GetByID(ctx, menu.Restaurant.UserID.String()); err == nil {
			return user, menu.Restaurant.OwnerEmail
		}
	}
	return nil, menu.Restaurant.OwnerEmail
}

func (s *verificationService) notifyOwner(ctx context.Context, owner *model.User, fallbackEmail, notifType, entityLabel, entityName string, approved bool, note string, payload map[string]interface{}) error {
	input := NotifyInput{
		Email:   fallbackEmail,
		Type:    notifType,
		Payload: payload,
	}
	if owner != nil {
		ownerID := owner.ID
		input.UserID = &ownerID
		if input.Email == "" {
			input.Email = owner.Email
		}
	}

	title, message := mailer.VerificationEmail(entityLabel, entityName, approved, note)
	input.Title = title
	input.Message = message

	_, err := s.notifications.Notify(ctx, input)
	return err
}

func (s *verificationService) emailOwner(owner *model.User, fallbackEmail, entityLabel, entityName string, approved bool, note string) error {
	if s.mail == nil {
		return nil
	}
	to := fallbackEmail
	if to == "" && owner != nil {
		to = owner.Email
	}
	if to == "" {
		return nil
	}
	subject, body := mailer.VerificationEmail(entityLabel, entityName, approved, note)
	return s.mail.Send(to, subject, body)
}

func (s *verificationService) RestaurantHistory(ctx context.Context, restaurantID string, page, limit int) ([]model.RestaurantVerification, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.verifications.ListForRestaurant(ctx, restaurantID, page, limit)
}

func (s *verificationService) MenuHistory(ctx context.Context, menuID string, page, limit int) ([]model.MenuVerification, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.verifications.ListForMenu(ctx, menuID, page, limit)
}

func menuCacheKey(slug string) string {
	return "menu:slug:" + slug
}
