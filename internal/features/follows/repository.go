package follows

import (
	"context"
	"fmt"
	"sort"

	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Repository owns the follow edges between users.
type Repository struct {
	store treestore.Store
}

func NewRepository(store treestore.Store) *Repository {
	return &Repository{store: store}
}

func followingPath(follower, followee string) string {
	return fmt.Sprintf("users/%s/following/%s", follower, followee)
}

func followersPath(followee, follower string) string {
	return fmt.Sprintf("users/%s/followers/%s", followee, follower)
}

// IsFollowing checks the follower's side of the edge.
func (r *Repository) IsFollowing(ctx context.Context, follower, followee string) (bool, error) {
	ok, err := treestore.Exists(ctx, r.store, followingPath(follower, followee))
	if err != nil {
		return false, apperrors.Remote(err)
	}
	return ok, nil
}

// Follow writes both sides of the edge, following side first. If the
// second write fails the edge is half-materialized and the error surfaces
// as a partial failure the caller must not swallow.
func (r *Repository) Follow(ctx context.Context, follower, followee string) error {
	if err := r.store.Set(ctx, followingPath(follower, followee), true); err != nil {
		return apperrors.Remote(err)
	}
	if err := r.store.Set(ctx, followersPath(followee, follower), true); err != nil {
		return apperrors.Partial(fmt.Errorf("following side written, followers side failed: %w", err))
	}
	return nil
}

// Unfollow removes both sides of the edge, following side first.
func (r *Repository) Unfollow(ctx context.Context, follower, followee string) error {
	if err := r.store.Delete(ctx, followingPath(follower, followee)); err != nil {
		return apperrors.Remote(err)
	}
	if err := r.store.Delete(ctx, followersPath(followee, follower)); err != nil {
		return apperrors.Partial(fmt.Errorf("following side removed, followers side failed: %w", err))
	}
	return nil
}

// Toggle follows if no edge exists, unfollows otherwise, and reports the
// resulting state.
func (r *Repository) Toggle(ctx context.Context, follower, followee string) (following bool, err error) {
	isFollowing, err := r.IsFollowing(ctx, follower, followee)
	if err != nil {
		return false, err
	}

	if isFollowing {
		return false, r.Unfollow(ctx, follower, followee)
	}
	return true, r.Follow(ctx, follower, followee)
}

// Reconcile repairs half-edges around one user: every entry in the user's
// following set gets its mirror in the followee's followers set, and every
// entry in the user's followers set gets its mirror in the follower's
// following set. Idempotent; re-running it converges.
func (r *Repository) Reconcile(ctx context.Context, uid string) (*ReconcileReport, error) {
	report := &ReconcileReport{UID: uid}

	var following map[string]bool
	if err := r.store.Get(ctx, fmt.Sprintf("users/%s/following", uid), &following); err != nil {
		return nil, apperrors.Remote(err)
	}
	for followee := range following {
		ok, err := treestore.Exists(ctx, r.store, followersPath(followee, uid))
		if err != nil {
			return nil, apperrors.Remote(err)
		}
		if !ok {
			if err := r.store.Set(ctx, followersPath(followee, uid), true); err != nil {
				return nil, apperrors.Remote(err)
			}
			report.RepairedEdges = append(report.RepairedEdges, uid+" -> "+followee)
		}
	}

	var followers map[string]bool
	if err := r.store.Get(ctx, fmt.Sprintf("users/%s/followers", uid), &followers); err != nil {
		return nil, apperrors.Remote(err)
	}
	for follower := range followers {
		ok, err := treestore.Exists(ctx, r.store, followingPath(follower, uid))
		if err != nil {
			return nil, apperrors.Remote(err)
		}
		if !ok {
			if err := r.store.Set(ctx, followingPath(follower, uid), true); err != nil {
				return nil, apperrors.Remote(err)
			}
			report.RepairedEdges = append(report.RepairedEdges, follower+" -> "+uid)
		}
	}

	sort.Strings(report.RepairedEdges)
	return report, nil
}
