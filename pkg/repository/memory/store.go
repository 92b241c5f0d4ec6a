package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// store is a mutex guarded map shared by the in-memory repositories.
type store[T any] struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]T
	owner   func(T) uuid.UUID
	created func(T) time.Time
}

func newStore[T any](owner func(T) uuid.UUID, created func(T) time.Time) *store[T] {
	return &store[T]{items: map[uuid.UUID]T{}, owner: owner, created: created}
}

func (s *store[T]) put(id uuid.UUID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = v
}

// replace swaps an existing item under one lock. A nil accept takes any
// stored value; found is false if id is absent.
func (s *store[T]) replace(id uuid.UUID, v T, accept func(old T) bool) (found, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[id]
	if !ok {
		return false, false
	}
	if accept != nil && !accept(old) {
		return true, false
	}
	s.items[id] = v
	return true, true
}

// get returns the item; a nil owner matches any owner.
func (s *store[T]) get(owner *uuid.UUID, id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok || (owner != nil && s.owner(v) != *owner) {
		var zero T
		return zero, false
	}
	return v, true
}

func (s *store[T]) remove(owner *uuid.UUID, id uuid.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok || (owner != nil && s.owner(v) != *owner) {
		var zero T
		return zero, false
	}
	delete(s.items, id)
	return v, true
}

// list returns newest first, like the SQL repositories.
func (s *store[T]) list(owner *uuid.UUID, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		if owner == nil || s.owner(v) == *owner {
			out = append(out, v)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return s.created(out[i]).After(s.created(out[j])) })
	if offset >= len(out) {
		return out[:0]
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
