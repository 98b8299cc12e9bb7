package comments

import (
	"context"
	"fmt"
	"sort"

	"github.com/servepupil/api/internal/pkg/treestore"
	apperrors "github.com/servepupil/api/pkg/errors"
)

// Repository reads and writes requests/{ownerUid}/{requestId}/comments.
type Repository struct {
	store treestore.Store
}

func NewRepository(store treestore.Store) *Repository {
	return &Repository{store: store}
}

func commentsPath(ownerUID, requestID string) string {
	return fmt.Sprintf("requests/%s/%s/comments", ownerUID, requestID)
}

func commentPath(ownerUID, requestID, commentID string) string {
	return fmt.Sprintf("requests/%s/%s/comments/%s", ownerUID, requestID, commentID)
}

// Add appends a comment and returns its generated id.
func (r *Repository) Add(ctx context.Context, ownerUID, requestID, authorUID, text string) (string, error) {
	id, err := r.store.Push(ctx, commentsPath(ownerUID, requestID))
	if err != nil {
		return "", apperrors.Remote(err)
	}
	record := map[string]interface{}{
		"uid":       authorUID,
		"text":      text,
		"timestamp": treestore.ServerTimestamp,
	}
	if err := r.store.Set(ctx, commentPath(ownerUID, requestID, id), record); err != nil {
		return "", apperrors.Remote(err)
	}
	return id, nil
}

// List returns a request's comments oldest first.
func (r *Repository) List(ctx context.Context, ownerUID, requestID string) ([]*Comment, error) {
	var tree map[string]Comment
	if err := r.store.Get(ctx, commentsPath(ownerUID, requestID), &tree); err != nil {
		return nil, apperrors.Remote(err)
	}

	out := make([]*Comment, 0, len(tree))
	for id, c := range tree {
		record := c
		record.ID = id
		out = append(out, &record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repository) Get(ctx context.Context, ownerUID, requestID, commentID string) (*Comment, error) {
	var c Comment
	if err := r.store.Get(ctx, commentPath(ownerUID, requestID, commentID), &c); err != nil {
		return nil, apperrors.Remote(err)
	}
	if c.UID == "" && c.Text == "" {
		return nil, apperrors.ErrNotFound
	}
	c.ID = commentID
	return &c, nil
}

func (r *Repository) Delete(ctx context.Context, ownerUID, requestID, commentID string) error {
	if err := r.store.Delete(ctx, commentPath(ownerUID, requestID, commentID)); err != nil {
		return apperrors.Remote(err)
	}
	return nil
}

// FindParent scans the whole requests tree for the request that holds
// commentID. Report flags carry only the comment id, so moderation has
// to recover the owner and request before it can delete.
func (r *Repository) FindParent(ctx context.Context, commentID string) (ownerUID, requestID string, err error) {
	var tree map[string]map[string]struct {
		Comments map[string]interface{} `json:"comments"`
	}
	if err := r.store.Get(ctx, "requests", &tree); err != nil {
		return "", "", apperrors.Remote(err)
	}
	for owner, byID := range tree {
		for id, req := range byID {
			if _, ok := req.Comments[commentID]; ok {
				return owner, id, nil
			}
		}
	}
	return "", "", apperrors.ErrNotFound
}
