package cart

import "sync"

// Store keeps one cart per browsing session, keyed by an opaque session id.
// Carts are created lazily on first access and dropped after submission.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// Get returns the cart for the session, creating one if none exists yet.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Remove discards the session's cart, if any.
func (s *Store) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
