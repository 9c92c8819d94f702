package session

import (
	"sync"
	"time"
)

// State is what the store keeps per session id.
type State struct {
	Window    Window
	UpdatedAt time.Time
}

// Store persists session state between requests. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(id string) (State, bool)
	Put(id string, st State)
	Delete(id string)
	// Cleanup evicts sessions idle for longer than the store's TTL and
	// returns how many were removed.
	Cleanup(now time.Time) int
}

// MemoryStore is an in-process Store. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]State
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore returns a store that forgets sessions idle longer than
// ttl. A zero ttl keeps sessions for the life of the process.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]State),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the state for id. Expired entries are reported as absent.
func (s *MemoryStore) Get(id string) (State, bool) {
	s.mu.RLock()
	st, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || s.expired(st, s.now()) {
		return State{}, false
	}
	return st, true
}

func (s *MemoryStore) Put(id string, st State) {
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = s.now()
	}
	s.mu.Lock()
	s.items[id] = st
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

func (s *MemoryStore) Cleanup(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, st := range s.items {
		if s.expired(st, now) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemoryStore) expired(st State, now time.Time) bool {
	return s.ttl > 0 && now.Sub(st.UpdatedAt) > s.ttl
}
