package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStore is a map-backed Store used in tests and local development. Its
// range handling mirrors S3: a start offset at or past the end of the object
// is rejected, while an end offset past the object is truncated.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores an object under name, replacing any previous content.
func (m *MemoryStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = bytes.Clone(data)
}

// LoadDir seeds the store with every regular file in dir, keyed by filename.
func (m *MemoryStore) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read media dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read media file %q: %w", e.Name(), err)
		}
		m.Put(e.Name(), data)
	}
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, name string, rng *ByteRange) (*Object, error) {
	m.mu.RLock()
	data, ok := m.objects[name]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}

	size := int64(len(data))
	if rng == nil {
		return &Object{
			Size:          size,
			ContentLength: size,
			Body:          io.NopCloser(bytes.NewReader(data)),
		}, nil
	}

	if rng.Start < 0 || rng.Start > rng.End || rng.Start >= size {
		return nil, ErrRangeNotSatisfiable
	}
	end := rng.End
	if end >= size {
		end = size - 1
	}
	slice := data[rng.Start : end+1]
	return &Object{
		Size:          size,
		ContentLength: int64(len(slice)),
		Body:          io.NopCloser(bytes.NewReader(slice)),
	}, nil
}

// Head implements Store.
func (m *MemoryStore) Head(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[name]
	return ok, nil
}
