package cartstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
)

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]cart.Cart{}}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return cart.Cart{}, fmt.Errorf("%w: %s", domain.ErrCartNotFound, id)
	}
	return c, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, c cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[id] = c
	s.saves++
	return nil
}

// Saves counts the successful Save calls.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
