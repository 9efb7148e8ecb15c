package repo

import (
	"errors"
	"sync"
)

var errDuplicateID = errors.New("duplicate id")

// Store is an insertion-ordered in-memory collection guarded by one lock.
// Values are copied in and out so callers never alias stored state.
type Store[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) string
}

func NewStore[T any](idOf func(T) string) *Store[T] {
	return &Store[T]{idOf: idOf}
}

func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if s.idOf(it) == id {
			return i
		}
	}
	return -1
}

// Add appends v unless its id is already present.
func (s *Store[T]) Add(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(s.idOf(v)) >= 0 {
		return errDuplicateID
	}
	s.items = append(s.items, v)
	return nil
}

// All returns a snapshot in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Replace computes the new value from the current one and stores it. Nothing is
// written when next returns an error. The lock is held across next, so next must
// not call back into this store.
func (s *Store[T]) Replace(id string, next func(cur T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	i := s.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	updated, err := next(s.items[i])
	if err != nil {
		return zero, err
	}
	s.items[i] = updated
	return updated, nil
}

func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Filter returns the items matching keep, in insertion order.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
