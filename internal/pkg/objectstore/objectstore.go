// Package objectstore is the narrow interface over binary storage: upload
// bytes under a deterministic path, get back a durable retrieval URL.
package objectstore

import (
	"context"
	"io"
)

type Store interface {
	// Upload stores the content under path and returns its retrieval URL.
	// Re-uploading to the same path overwrites the previous content.
	Upload(ctx context.Context, path string, content io.Reader) (string, error)

	// Delete removes the content at path. Best effort; deleting an absent
	// path is not an error.
	Delete(ctx context.Context, path string) error
}
