package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory BlobStore used by tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Deleted records every key passed to Delete, including missing ones.
	Deleted []string
	// FailUpload forces Upload to return the given error when set.
	FailUpload error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string][]byte{}}
}

func (m *MemoryStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpload != nil {
		return "", m.FailUpload
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	return "mem://" + key, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

// Has reports whether a blob exists under key.
func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}
