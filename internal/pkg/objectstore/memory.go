package objectstore

import (
	"context"
	"io"
	"sync"
)

// MemoryStore keeps uploads in a map. Test substrate; the returned URLs are
// stable per path so overwrites keep the same reference, like the real store.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailUploads makes every Upload return this error, for exercising the
	// upload-then-write sequencing.
	FailUploads error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Upload(ctx context.Context, path string, content io.Reader) (string, error) {
	if m.FailUploads != nil {
		return "", m.FailUploads
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.objects[path] = data
	m.mu.Unlock()
	return "memory://" + path, nil
}

func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	delete(m.objects, path)
	m.mu.Unlock()
	return nil
}

// Has reports whether an object exists at path.
func (m *MemoryStore) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}

var _ Store = (*MemoryStore)(nil)
