// Package memory is the default persistence backend: mutex-guarded maps
// that keep insertion order and hand out copies, so callers can never mutate
// stored records in place.
package memory

import (
	"sync"

	"poolpro/internal/usecase/interfaces"
)

// ErrAlreadyExists mirrors the conditional-put failure of the DynamoDB
// backend.
var ErrAlreadyExists = interfaces.ErrAlreadyExists

type store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	id    func(T) string
	clone func(T) T

	// version and setVersion are nil for records updated blindly.
	version    func(T) int
	setVersion func(T, int) T
}

func newStore[T any](id func(T) string, clone func(T) T) *store[T] {
	return &store[T]{items: map[string]T{}, id: id, clone: clone}
}

// versioned turns update into a compare-and-set on the record version.
func (s *store[T]) versioned(version func(T) int, setVersion func(T, int) T) *store[T] {
	s.version = version
	s.setVersion = setVersion
	return s
}

func (s *store[T]) create(v T) (T, error) {
	var zero T
	key := s.id(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return zero, ErrAlreadyExists
	}
	s.items[key] = s.clone(v)
	s.order = append(s.order, key)
	return s.clone(v), nil
}

// get returns the zero value when the key is absent.
func (s *store[T]) get(key string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		var zero T
		return zero
	}
	return s.clone(v)
}

// update replaces an existing record; a missing one yields the zero value.
// On a versioned store the stored version must match v's.
func (s *store[T]) update(v T) (T, error) {
	var zero T
	key := s.id(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.items[key]
	if !ok {
		return zero, nil
	}
	if s.version != nil {
		if s.version(current) != s.version(v) {
			return zero, interfaces.ErrVersionConflict
		}
		v = s.setVersion(v, s.version(v)+1)
	}
	s.items[key] = s.clone(v)
	return s.clone(v), nil
}

func (s *store[T]) list(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, key := range s.order {
		v := s.items[key]
		if keep == nil || keep(v) {
			out = append(out, s.clone(v))
		}
	}
	return out
}
