// Package cache provides a transactional entity cache for optimistic UI-style
// updates: a mutation is applied locally and synchronously, then either
// committed with the authoritative backend value or rolled back to the exact
// pre-mutation snapshot.
package cache

import (
	"fmt"
	"sync"
)

// Store is an optimistic-update cache keyed by entity id. T must be a value
// type (or treated as one): snapshots are taken by value, so a committed or
// rolled-back entry is byte-identical to what was stored.
//
// Locking is per entity. Mutations on different ids never block each other;
// two mutations on the same id serialize, and at most one may be pending.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	mu       sync.Mutex
	value    T
	snapshot T
	pending  bool
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]*entry[T])}
}

func (s *Store[T]) entryFor(id string) *entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry[T]{}
		s.entries[id] = e
	}
	return e
}

// Put seeds or replaces the cached value for an entity outside any mutation
// (e.g. from a list fetch). Fails while a mutation is pending.
func (s *Store[T]) Put(id string, value T) error {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return fmt.Errorf("entity %s has a pending mutation", id)
	}
	e.value = value
	return nil
}

// Get returns the current local value, which may be a tentative one.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, true
}

// Apply snapshots the current value and applies the mutation synchronously.
// The caller sees the tentative value immediately; the entity stays marked
// pending until Commit or Rollback. A second Apply on the same id before the
// first resolves is an error: one outstanding mutation per entity.
func (s *Store[T]) Apply(id string, mutate func(T) T) (T, error) {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		var zero T
		return zero, fmt.Errorf("entity %s already has a pending mutation", id)
	}
	e.snapshot = e.value
	e.value = mutate(e.value)
	e.pending = true
	return e.value, nil
}

// Commit reconciles the entry with the authoritative backend value, which may
// include server-computed fields the tentative value lacked.
func (s *Store[T]) Commit(id string, authoritative T) error {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.pending {
		return fmt.Errorf("entity %s has no pending mutation to commit", id)
	}
	e.value = authoritative
	e.pending = false
	var zero T
	e.snapshot = zero
	return nil
}

// Rollback restores the pre-mutation snapshot exactly.
func (s *Store[T]) Rollback(id string) error {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.pending {
		return fmt.Errorf("entity %s has no pending mutation to roll back", id)
	}
	e.value = e.snapshot
	e.pending = false
	var zero T
	e.snapshot = zero
	return nil
}

// Delete drops an entity from the cache. Fails while a mutation is pending.
func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	e.mu.Lock()
	pending := e.pending
	e.mu.Unlock()
	if pending {
		return fmt.Errorf("entity %s has a pending mutation", id)
	}
	delete(s.entries, id)
	return nil
}
