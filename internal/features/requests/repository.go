package requests

import (
	"context"
	"fmt"
	"sort"

	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Repository reads and writes the requests/{ownerUid}/{requestId} subtree.
type Repository struct {
	store treestore.Store
}

func NewRepository(store treestore.Store) *Repository {
	return &Repository{store: store}
}

func ownerPath(ownerUID string) string {
	return fmt.Sprintf("requests/%s", ownerUID)
}

func requestPath(ownerUID, requestID string) string {
	return fmt.Sprintf("requests/%s/%s", ownerUID, requestID)
}

// NewID reserves a chronologically-ordered id under requests/{ownerUid}.
func (r *Repository) NewID(ctx context.Context, ownerUID string) (string, error) {
	id, err := r.store.Push(ctx, ownerPath(ownerUID))
	if err != nil {
		return "", apperrors.Remote(err)
	}
	return id, nil
}

// Put writes the full request record.
func (r *Repository) Put(ctx context.Context, ownerUID, requestID string, record map[string]interface{}) error {
	if err := r.store.Set(ctx, requestPath(ownerUID, requestID), record); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

// Merge applies a partial field update, preserving untouched children
// (likedBy, comments, imageUrl when no new image was uploaded).
func (r *Repository) Merge(ctx context.Context, ownerUID, requestID string, fields map[string]interface{}) error {
	if err := r.store.Update(ctx, requestPath(ownerUID, requestID), fields); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, ownerUID, requestID string) (*Request, error) {
	var req Request
	if err := r.store.Get(ctx, requestPath(ownerUID, requestID), &req); err != nil {
		return nil, apperrors.Remote(err)
	}
	if req.Description == "" && req.RequestType == "" && req.Timestamp == 0 {
		ok, err := treestore.Exists(ctx, r.store, requestPath(ownerUID, requestID))
		if err != nil {
			return nil, apperrors.Remote(err)
		}
		if !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	req.ID = requestID
	req.OwnerUID = ownerUID
	return &req, nil
}

// Delete removes the whole request subtree, comments and likes included.
func (r *Repository) Delete(ctx context.Context, ownerUID, requestID string) error {
	if err := r.store.Delete(ctx, requestPath(ownerUID, requestID)); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

// ListByOwner returns one owner's requests, oldest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerUID string) ([]*Request, error) {
	var tree map[string]Request
	if err := r.store.Get(ctx, ownerPath(ownerUID), &tree); err != nil {
		return nil, apperrors.Remote(err)
	}
	return sortByTimestamp(decodeTree(tree, ownerUID)), nil
}

// All reads the entire requests tree, flattened. O(total requests across
// all users); the global feed and the moderation scans accept that cost.
func (r *Repository) All(ctx context.Context) ([]*Request, error) {
	var tree map[string]map[string]Request
	if err := r.store.Get(ctx, "requests", &tree); err != nil {
		return nil, apperrors.Remote(err)
	}

	var out []*Request
	for ownerUID, byID := range tree {
		out = append(out, decodeTree(byID, ownerUID)...)
	}
	return sortByTimestamp(out), nil
}

// FindOwner scans the requests tree for the owner of requestID. Report
// flags carry only the target id, so moderation has to locate the owner.
func (r *Repository) FindOwner(ctx context.Context, requestID string) (string, error) {
	var tree map[string]map[string]interface{}
	if err := r.store.Get(ctx, "requests", &tree); err != nil {
		return "", apperrors.Remote(err)
	}
	for ownerUID, byID := range tree {
		if _, ok := byID[requestID]; ok {
			return ownerUID, nil
		}
	}
	return "", apperrors.ErrNotFound
}

func decodeTree(tree map[string]Request, ownerUID string) []*Request {
	out := make([]*Request, 0, len(tree))
	for id, req := range tree {
		record := req
		record.ID = id
		record.OwnerUID = ownerUID
		out = append(out, &record)
	}
	return out
}

func sortByTimestamp(reqs []*Request) []*Request {
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].Timestamp != reqs[j].Timestamp {
			return reqs[i].Timestamp < reqs[j].Timestamp
		}
		return reqs[i].ID < reqs[j].ID
	})
	return reqs
}
