package service

import (
	"context"
	"fmt"

	"rasosehat-backend/internal/model"
	"rasosehat-backend/internal/repository"

	"github.com/google/uuid"
)

// AssociationKind selects which reference table a pivot sync targets.
type AssociationKind string

const (
	KindIngredient AssociationKind = "ingredient"
	KindDietClaim  AssociationKind = "diet_claim"
)

// PivotService resolves free-form labels to reference ids and replaces a
// menu's pivot rows with the resolved set.
type PivotService interface {
	// SyncAssociations accepts a heterogeneous label list: values that parse
	// as reference ids are trusted as-is, everything else is matched against
	// the reference table by name and created on first use. The previous
	// associations of that kind are fully replaced; an empty list clears them.
	SyncAssociations(ctx context.Context, menuID uuid.UUID, kind AssociationKind, labels []interface{}) error
	ListIngredients(ctx context.Context, page, limit int) ([]model.Ingredient, int64, error)
	ListDietClaims(ctx context.Context, page, limit int) ([]model.DietClaim, int64, error)
}

type pivotService struct {
	refs repository.ReferenceRepository
	tx   repository.TransactionManager
}

func NewPivotService(refs repository.ReferenceRepository, tx repository.TransactionManager) PivotService {
	return &pivotService{refs: refs, tx: tx}
}

func (s *pivotService) SyncAssociations(ctx context.Context, menuID uuid.UUID, kind AssociationKind, labels []interface{}) error {
	if kind != KindIngredient && kind != KindDietClaim {
		return fmt.Errorf("%w: unknown association kind %q", ErrValidation, kind)
	}

	ids := make([]uuid.UUID, 0, len(labels))
	for _, label := range labels {
		id, err := s.resolveLabel(ctx, kind, label)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	// The replacement is delete-then-insert; both halves commit or neither.
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if kind == KindIngredient {
			return s.refs.ReplaceMenuIngredients(txCtx, menuID, ids)
		}
		return s.refs.ReplaceMenuDietClaims(txCtx, menuID, ids)
	})
}

func (s *pivotService) ListIngredients(ctx context.Context, page, limit int) ([]model.Ingredient, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	return s.refs.ListIngredients(ctx, page, limit)
}

func (s *pivotService) ListDietClaims(ctx context.Context, page, limit int) ([]model.DietClaim, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	return s.refs.ListDietClaims(ctx, page, limit)
}

// resolveLabel maps a single label to a reference id. A label that parses
// as a uuid is used directly with no existence check (the caller is
// trusted). Textual labels reuse the first case-insensitive substring match
// or create a fresh reference row.
func (s *pivotService) resolveLabel(ctx context.Context, kind AssociationKind, label interface{}) (uuid.UUID, error) {
	name := fmt.Sprintf("%v", label)
	if text, ok := label.(string); ok {
		if id, err := uuid.Parse(text); err == nil {
			return id, nil
		}
		name = text
	}

	if name == "" {
		return uuid.Nil, fmt.Errorf("%w: empty association label", ErrValidation)
	}

	if kind == KindIngredient {
		if existing, err := s.refs.FindIngredientByName(ctx, name); err == nil {
			return existing.ID, nil
		}
		fresh := model.Ingredient{Name: name}
		if err := s.refs.CreateIngredient(ctx, &fresh); err != nil {
			return uuid.Nil, fmt.Errorf("failed to create ingredient %q: %w", name, err)
		}
		return fresh.ID, nil
	}

	if existing, err := s.refs.FindDietClaimByName(ctx, name); err == nil {
		return existing.ID, nil
	}
	fresh := model.DietClaim{Name: name}
	if err := s.refs.CreateDietClaim(ctx, &fresh); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create diet claim %q: %w", name, err)
	}
	return fresh.ID, nil
}
