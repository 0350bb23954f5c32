package store

import "sync"

// Store is a mutex-guarded key-value store. The flow uses it as the metadata
// side channel that checkpoint callbacks patch after a node finished training.
type Store[K comparable, V any] struct {
	lock    sync.RWMutex
	entries map[K]V
}

func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]V),
	}
}

// Get returns the value stored under k.
func (s *Store[K, V]) Get(k K) (V, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.entries[k]

	return v, ok
}

// Set stores v under k, overriding any previous value.
func (s *Store[K, V]) Set(k K, v V) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.entries[k] = v
}

// Merge applies a patch, overriding existing keys.
func (s *Store[K, V]) Merge(patch map[K]V) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for k, v := range patch {
		s.entries[k] = v
	}
}

// Delete removes the value stored under k.
func (s *Store[K, V]) Delete(k K) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.entries, k)
}

// Len returns the number of stored entries.
func (s *Store[K, V]) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.entries)
}

// Keys lists all stored keys, in no particular order.
func (s *Store[K, V]) Keys() []K {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]K, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}

	return keys
}

// Snapshot returns a copy of all entries.
func (s *Store[K, V]) Snapshot() map[K]V {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make(map[K]V, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}

	return out
}
