// Package jsonstore persists a record collection as a single JSON array on
// disk. Every mutation round-trips the whole collection: read, change in
// memory, rewrite. A per-collection mutex serialises writers within this
// process; there is no cross-process locking.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Collection is a JSON-array-backed record collection.
type Collection[T any] struct {
	mu   sync.RWMutex
	path string
}

// New creates a collection stored at path. The file is created lazily on
// the first write; a missing file reads as an empty collection.
func New[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Load returns every record in the collection.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

// Mutate applies fn to the full record set and rewrites the file with
// whatever fn returns. Returning an error from fn leaves the file untouched.
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.write(items)
}

func (c *Collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
