package profiles

import (
	"context"
	"fmt"
	"sort"

	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Repository reads and writes users/{uid} nodes in the tree store.
type Repository struct {
	store treestore.Store
}

func NewRepository(store treestore.Store) *Repository {
	return &Repository{store: store}
}

func userPath(uid string) string { return fmt.Sprintf("users/%s", uid) }

// Save writes the profile record. Creating and editing are the same write;
// the follow subtrees and the blocked flag live outside the saved fields
// and are never touched here.
func (r *Repository) Save(ctx context.Context, uid string, user *User) error {
	fields := map[string]interface{}{
		"name":     user.Name,
		"bio":      user.Bio,
		"phone":    user.Phone,
		"imageUrl": user.ImageURL,
	}
	if err := r.store.Update(ctx, userPath(uid), fields); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, uid string) (*User, error) {
	var user User
	if err := r.store.Get(ctx, userPath(uid), &user); err != nil {
		return nil, apperrors.Remote(err)
	}
	if user.Name == "" && user.Bio == "" && user.ImageURL == "" {
		// Distinguish a genuinely absent node from an empty record.
		ok, err := treestore.Exists(ctx, r.store, userPath(uid))
		if err != nil {
			return nil, apperrors.Remote(err)
		}
		if !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	user.UID = uid
	return &user, nil
}

// Exists reports whether uid has a profile.
func (r *Repository) Exists(ctx context.Context, uid string) (bool, error) {
	ok, err := treestore.Exists(ctx, r.store, userPath(uid))
	if err != nil {
		return false, apperrors.Remote(err)
	}
	return ok, nil
}

// Name resolves users/{uid}/name, used by the comment enrichment join.
func (r *Repository) Name(ctx context.Context, uid string) (string, error) {
	var name string
	if err := r.store.Get(ctx, userPath(uid)+"/name", &name); err != nil {
		return "", apperrors.Remote(err)
	}
	return name, nil
}

// Counts returns the live cardinality of the followers and following
// subtrees. Cached integers are never trusted.
func (r *Repository) Counts(ctx context.Context, uid string) (followers, following int, err error) {
	var fset, gset map[string]bool
	if err := r.store.Get(ctx, userPath(uid)+"/followers", &fset); err != nil {
		return 0, 0, apperrors.Remote(err)
	}
	if err := r.store.Get(ctx, userPath(uid)+"/following", &gset); err != nil {
		return 0, 0, apperrors.Remote(err)
	}
	return len(fset), len(gset), nil
}

// FollowerIDs returns the uids in users/{uid}/followers.
func (r *Repository) FollowerIDs(ctx context.Context, uid string) ([]string, error) {
	return r.edgeIDs(ctx, userPath(uid)+"/followers")
}

// FollowingIDs returns the uids in users/{uid}/following.
func (r *Repository) FollowingIDs(ctx context.Context, uid string) ([]string, error) {
	return r.edgeIDs(ctx, userPath(uid)+"/following")
}

func (r *Repository) edgeIDs(ctx context.Context, path string) ([]string, error) {
	var set map[string]bool
	if err := r.store.Get(ctx, path, &set); err != nil {
		return nil, apperrors.Remote(err)
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// IsBlocked reads users/{uid}/isBlocked.
func (r *Repository) IsBlocked(ctx context.Context, uid string) (bool, error) {
	var blocked bool
	if err := r.store.Get(ctx, userPath(uid)+"/isBlocked", &blocked); err != nil {
		return false, apperrors.Remote(err)
	}
	return blocked, nil
}

// SetBlocked sets users/{uid}/isBlocked. Admin action only.
func (r *Repository) SetBlocked(ctx context.Context, uid string, blocked bool) error {
	if err := r.store.Set(ctx, userPath(uid)+"/isBlocked", blocked); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

// ListAll reads the whole users tree. Admin user list; unbounded scan by
// design (see DESIGN.md).
func (r *Repository) ListAll(ctx context.Context) ([]*User, error) {
	var tree map[string]User
	if err := r.store.Get(ctx, "users", &tree); err != nil {
		return nil, apperrors.Remote(err)
	}

	users := make([]*User, 0, len(tree))
	for uid, u := range tree {
		user := u
		user.UID = uid
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UID < users[j].UID })
	return users, nil
}
