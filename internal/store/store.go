package store

import (
	"sync"

	"github.com/miradorstack/logistics-pulse/internal/models"
)

// Listener observes snapshot replacements. It must treat the snapshot as read-only.
type Listener func(snapshot *models.Snapshot)

// Store holds the single current snapshot. It has one writer and any number of
// readers; listeners are notified synchronously, in subscription order, after
// every Replace.
type Store struct {
	mu        sync.RWMutex
	current   *models.Snapshot
	version   uint64
	nextID    uint64
	listeners []subscription
}

type subscription struct {
	id uint64
	fn Listener
}

// New returns an empty store; Current reports no snapshot until the first Replace.
func New() *Store {
	return &Store{}
}

// Current returns the published snapshot, or nil before the first Replace.
func (s *Store) Current() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version counts completed replacements.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Replace publishes snapshot and fans it out to listeners. The caller hands
// over ownership and must not modify snapshot afterwards. Nil is ignored.
func (s *Store) Replace(snapshot *models.Snapshot) {
	if snapshot == nil {
		return
	}

	s.mu.Lock()
	s.current = snapshot
	s.version++
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(snapshot)
	}
}

// Subscribe registers fn and returns a function that removes it. The returned
// function is safe to call more than once.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.listeners {
		if sub.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}
