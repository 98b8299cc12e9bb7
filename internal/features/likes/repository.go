package likes

import (
	"context"
	"fmt"

	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Repository manipulates the likedBy set under a request. Likes are pure
// set membership: presence of requests/{owner}/{id}/likedBy/{uid} means
// liked, and the count is the set's cardinality. Concurrent togglers
// commute, which is why no stored counter exists.
type Repository struct {
	store treestore.Store
}

func NewRepository(store treestore.Store) *Repository {
	return &Repository{store: store}
}

func likedByPath(ownerUID, requestID string) string {
	return fmt.Sprintf("requests/%s/%s/likedBy", ownerUID, requestID)
}

// Toggle flips uid's membership in the likedBy set and returns the new
// state. Toggling twice restores the original state.
func (r *Repository) Toggle(ctx context.Context, ownerUID, requestID, uid string) (liked bool, count int, err error) {
	set, err := r.Set(ctx, ownerUID, requestID)
	if err != nil {
		return false, 0, err
	}

	memberPath := likedByPath(ownerUID, requestID) + "/" + uid
	if set[uid] {
		if err := r.store.Delete(ctx, memberPath); err != nil {
			return false, 0, apperrors.Remote(err)
		}
		return false, len(set) - 1, nil
	}

	if err := r.store.Set(ctx, memberPath, true); err != nil {
		return false, 0, apperrors.Remote(err)
	}
	return true, len(set) + 1, nil
}

// Set returns the current likedBy membership.
func (r *Repository) Set(ctx context.Context, ownerUID, requestID string) (map[string]bool, error) {
	var set map[string]bool
	if err := r.store.Get(ctx, likedByPath(ownerUID, requestID), &set); err != nil {
		return nil, apperrors.Remote(err)
	}
	return set, nil
}

// Count is the derived like count.
func (r *Repository) Count(ctx context.Context, ownerUID, requestID string) (int, error) {
	set, err := r.Set(ctx, ownerUID, requestID)
	if err != nil {
		return 0, err
	}
	return len(set), nil
}
