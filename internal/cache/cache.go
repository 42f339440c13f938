// Package cache provides the bounded TTL memo store sitting in front of the
// query orchestrator and the suggestion service. Keys are canonical filter
// signatures; expiry is checked lazily on Get, and the oldest-inserted entry
// is evicted when capacity is exceeded. A single mutex guards the store,
// which is sufficient for the single-digit concurrent searches expected per
// session.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    interface{}
	storedAt time.Time
	ttl      time.Duration
}

// Store is a bounded in-memory TTL cache safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string // insertion order, oldest first
	capacity int
	now      func() time.Time
}

// NewStore creates a Store holding at most capacity entries. A capacity of
// zero disables caching entirely.
func NewStore(capacity int) *Store {
	return &Store{
		entries:  make(map[string]entry, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the value stored under key, if present and not expired.
// Expired entries are removed on the spot; there is no background sweep.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return nil, false
	}
	if s.now().Sub(e.storedAt) > e.ttl {
		s.removeLocked(key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key with the given TTL. Re-putting an existing key
// refreshes its value and moves it to the back of the eviction order. When
// the store is over capacity the oldest-inserted entry is evicted first.
func (s *Store) Put(key string, value interface{}, ttl time.Duration) {
	if s.capacity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		s.removeLocked(key)
	}

	for len(s.entries) >= s.capacity && len(s.order) > 0 {
		s.removeLocked(s.order[0])
	}

	s.entries[key] = entry{value: value, storedAt: s.now(), ttl: ttl}
	s.order = append(s.order, key)
}

// Invalidate drops the entry stored under key, if any.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

// Len reports the number of live entries, counting expired ones not yet
// collected by a Get.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) removeLocked(key string) {
	if _, found := s.entries[key]; !found {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
