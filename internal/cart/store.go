package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store owns the live carts for the process, keyed by session id. Carts
// leave the store on checkout completion or cancel.
type Store struct {
	catalog CatalogPort

	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore builds an empty Store.
func NewStore(cat CatalogPort) *Store {
	return &Store{catalog: cat, carts: make(map[string]*Cart)}
}

// Create opens a new empty cart and returns it.
func (s *Store) Create() *Cart {
	c := New(uuid.NewString(), s.catalog)
	s.mu.Lock()
	s.carts[c.ID()] = c
	s.mu.Unlock()
	return c
}

// Get looks up a cart by session id.
func (s *Store) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	return c, ok
}

// Discard removes a cart from the store.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
