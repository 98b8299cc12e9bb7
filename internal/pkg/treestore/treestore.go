// Package treestore abstracts the hierarchical realtime database the whole
// data model is persisted in: point reads, point writes, partial updates,
// subtree removal, push-id generation and live subscriptions to a subtree.
//
// Layout used by the application:
//
//	users/{uid}
//	users/{uid}/followers/{followerUid} = true
//	users/{uid}/following/{followeeUid} = true
//	requests/{ownerUid}/{requestId}
//	requests/{ownerUid}/{requestId}/likedBy/{uid} = true
//	requests/{ownerUid}/{requestId}/comments/{commentId}
//	reported_content/{requests|comments|users}/{targetId} = true
package treestore

import (
	"context"
	"strings"
)

// ServerTimestamp is a placeholder resolved by the store to the commit time
// in unix milliseconds.
var ServerTimestamp = map[string]interface{}{".sv": "timestamp"}

// Event is one delivery on a live subscription: a fresh snapshot of the
// observed subtree. Value is nil when the subtree is absent.
type Event struct {
	Path  string
	Value interface{}
}

// Subscription is a live, push-based view of a subtree. The first event
// replays the current state; every later mutation under the path delivers a
// new snapshot, in commit order for that path. Subscriptions must be closed
// when their owner goes away or they keep mutating state for a consumer
// that no longer exists.
type Subscription interface {
	Events() <-chan Event
	Close()
}

// Store is the shared tree store. There are no cross-path transactions:
// any operation spanning two paths is two sequential, independently-failable
// calls, and callers own the partial-failure story.
type Store interface {
	// Get decodes the value at path into v. An absent path decodes as null,
	// leaving v at its zero value.
	Get(ctx context.Context, path string, v interface{}) error

	// Set writes the full value at path, replacing any existing subtree.
	Set(ctx context.Context, path string, v interface{}) error

	// Update merges the given children into the node at path.
	Update(ctx context.Context, path string, fields map[string]interface{}) error

	// Delete removes the subtree at path. Removing an absent path is a no-op.
	Delete(ctx context.Context, path string) error

	// Push reserves a new chronologically-ordered child key under path
	// without writing a value.
	Push(ctx context.Context, path string) (string, error)

	// Observe opens a live subscription to the subtree at path.
	Observe(ctx context.Context, path string) (Subscription, error)
}

// Join builds a slash-separated path from segments, ignoring empties.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Exists reports whether any value is present at path.
func Exists(ctx context.Context, s Store, path string) (bool, error) {
	var v interface{}
	if err := s.Get(ctx, path, &v); err != nil {
		return false, err
	}
	return v != nil, nil
}
