package usecase

import (
	"context"
	"sync"

	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService owns the carts of the storefront. Carts are loaded from the
// store on first use and saved after every mutation; a failed save is
// logged and never surfaces to the caller.
type CartService struct {
	store  interfaces.CartStore
	logger *zap.Logger
	newID  func() string

	mu    sync.Mutex
	carts map[string]cart.Cart
}

func NewCartService(store interfaces.CartStore, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
		carts:  map[string]cart.Cart{},
	}
}

func (s *CartService) Create(ctx context.Context) (*interfaces.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	s.carts[id] = cart.Cart{}
	s.persist(ctx, id, cart.Cart{})
	return view(id, cart.Cart{}, nil), nil
}

func (s *CartService) Get(ctx context.Context, id string) (*interfaces.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return view(id, c, nil), nil
}

func (s *CartService) Add(ctx context.Context, id string, item cart.Item) (*interfaces.CartView, error) {
	return s.mutate(ctx, id, func(c cart.Cart) cart.Cart { return c.Add(item) })
}

func (s *CartService) Remove(ctx context.Context, id string, itemID cart.ID) (*interfaces.CartView, error) {
	return s.mutate(ctx, id, func(c cart.Cart) cart.Cart { return c.Remove(itemID) })
}

func (s *CartService) SetQuantity(ctx context.Context, id string, itemID cart.ID, quantity int) (*interfaces.CartView, error) {
	return s.mutate(ctx, id, func(c cart.Cart) cart.Cart { return c.SetQuantity(itemID, quantity) })
}

func (s *CartService) Clear(ctx context.Context, id string) (*interfaces.CartView, error) {
	return s.mutate(ctx, id, func(c cart.Cart) cart.Cart { return c.Clear() })
}

func (s *CartService) mutate(ctx context.Context, id string, op func(cart.Cart) cart.Cart) (*interfaces.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	after := op(before)
	s.carts[id] = after
	s.persist(ctx, id, after)

	delta, err := infrastructure.CartDelta(before, after)
	if err != nil {
		s.logger.Warn("cart delta failed", zap.String("cart_id", id), zap.Error(err))
	}
	return view(id, after, delta), nil
}

// load must be called with mu held.
func (s *CartService) load(ctx context.Context, id string) (cart.Cart, error) {
	if c, ok := s.carts[id]; ok {
		return c, nil
	}
	c, err := s.store.Load(ctx, id)
	if err != nil {
		return cart.Cart{}, err
	}
	s.carts[id] = c
	s.logger.Debug("cart loaded", zap.String("cart_id", id), zap.Int("lines", c.Len()))
	return c, nil
}

func (s *CartService) persist(ctx context.Context, id string, c cart.Cart) {
	if err := s.store.Save(ctx, id, c); err != nil {
		s.logger.Warn("cart save failed",
			zap.String("cart_id", id),
			zap.Error(err))
	}
}

func view(id string, c cart.Cart, delta []byte) *interfaces.CartView {
	return &interfaces.CartView{
		ID:         id,
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Delta:      delta,
	}
}
