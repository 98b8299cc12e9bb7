package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Repository owns the reported_content/{kind}/{targetId} sentinel sets.
// A flag is a bare true; the tree records that a target was reported,
// not who reported it or how many times.
type Repository struct {
	store treestore.Store
}

func NewRepository(store treestore.Store) *Repository {
	return &Repository{store: store}
}

func flagPath(kind Kind, targetID string) string {
	return fmt.Sprintf("reported_content/%s/%s", kind, targetID)
}

// Report sets the flag for targetID. The first report wins; every later
// report returns ErrAlreadyReported and leaves the tree untouched.
func (r *Repository) Report(ctx context.Context, kind Kind, targetID string) error {
	exists, err := treestore.Exists(ctx, r.store, flagPath(kind, targetID))
	if err != nil {
		return apperrors.Remote(err)
	}
	if exists {
		return apperrors.ErrAlreadyReported
	}
	if err := r.store.Set(ctx, flagPath(kind, targetID), true); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

func (r *Repository) IsReported(ctx context.Context, kind Kind, targetID string) (bool, error) {
	exists, err := treestore.Exists(ctx, r.store, flagPath(kind, targetID))
	if err != nil {
		return false, apperrors.Remote(err)
	}
	return exists, nil
}

// List returns the flagged target ids for one kind, sorted.
func (r *Repository) List(ctx context.Context, kind Kind) ([]string, error) {
	var set map[string]bool
	if err := r.store.Get(ctx, fmt.Sprintf("reported_content/%s", kind), &set); err != nil {
		return nil, apperrors.Remote(err)
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Clear removes the flag for targetID. Clearing an absent flag is a
// no-op. The kind arrives as a plain string so content features can
// depend on this method without importing the Kind type.
func (r *Repository) Clear(ctx context.Context, kind, targetID string) error {
	k, ok := ParseKind(kind)
	if !ok {
		return fmt.Errorf("%w: unknown report kind %q", apperrors.ErrValidation, kind)
	}
	if err := r.store.Delete(ctx, flagPath(k, targetID)); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}
