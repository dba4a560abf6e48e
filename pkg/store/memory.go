package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for development and tests.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*Record)}
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	cp.Data = slices.Clone(rec.Data)
	return &cp, nil
}

// Put inserts or replaces a record.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	cp.Data = slices.Clone(rec.Data)
	cp.UpdatedAt = time.Now().UTC()
	if old, ok := s.recs[rec.ID]; ok {
		cp.CreatedAt = old.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = cp.UpdatedAt
	}
	s.recs[rec.ID] = &cp
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

// List returns all records without data payloads, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.recs))
	for _, rec := range s.recs {
		cp := *rec
		cp.Data = nil
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *Record) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
