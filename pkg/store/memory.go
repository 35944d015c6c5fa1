package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/evoscape/pkg/observability"
)

// MemoryStore is an in-memory store for development and testing.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Put stores a record, replacing any existing record with the same name.
func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	s.records[rec.Name] = rec
	s.mu.Unlock()
	observability.Store().OnStorePut(ctx, rec.Name, viewSize(rec.View))
	return nil
}

// Get returns the record stored under name, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, name string) (Record, error) {
	s.mu.RLock()
	rec, ok := s.records[name]
	s.mu.RUnlock()
	observability.Store().OnStoreGet(ctx, name, ok)
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the record stored under name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
	return nil
}

// List returns the names of all stored records, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
