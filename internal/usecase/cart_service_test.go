package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/cartstore"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errDiskFull = errors.New("disk full")

type failingStore struct {
	*cartstore.MemoryStore
}

func (failingStore) Save(context.Context, string, cart.Cart) error { return errDiskFull }

func vinyl(id string, price float64) cart.Item {
	return cart.Item{ID: cart.ID(id), Name: "Disco " + id, UnitPrice: price}
}

func TestCartService_AddTwiceMerges(t *testing.T) {
	store := cartstore.NewMemoryStore()
	svc := NewCartService(store, zap.NewNop())
	svc.newID = func() string { return "cart-1" }
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cart-1", created.ID)
	assert.Empty(t, created.Items)
	assert.Nil(t, created.Delta)

	_, err = svc.Add(ctx, "cart-1", vinyl("1", 25000))
	require.NoError(t, err)
	v, err := svc.Add(ctx, "cart-1", vinyl("1", 25000))
	require.NoError(t, err)

	assert.Equal(t, 2, v.TotalItems)
	assert.Equal(t, 50000.0, v.TotalPrice)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 2, v.Items[0].Quantity)
	assert.Equal(t, 3, store.Saves())

	saved, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 2, saved.TotalItems())
}

func TestCartService_DeltaNamesChangedLine(t *testing.T) {
	svc := NewCartService(cartstore.NewMemoryStore(), nil)
	svc.newID = func() string { return "c" }
	ctx := context.Background()
	_, _ = svc.Create(ctx)

	v, err := svc.Add(ctx, "c", vinyl("7", 15990))
	require.NoError(t, err)
	require.NotNil(t, v.Delta)

	var delta map[string]any
	require.NoError(t, json.Unmarshal(v.Delta, &delta))
	assert.Equal(t, 1.0, delta["totalItems"])
	assert.Equal(t, 15990.0, delta["totalPrice"])
	assert.Contains(t, delta["items"], "7")

	v, err = svc.Remove(ctx, "c", "missing")
	require.NoError(t, err)
	assert.Nil(t, v.Delta, "a no-op leaves nothing to patch")

	v, err = svc.SetQuantity(ctx, "c", "7", 0)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(v.Delta, &delta))
	assert.Equal(t, map[string]any{"7": nil}, delta["items"])
}

func TestCartService_SetQuantityAndClear(t *testing.T) {
	svc := NewCartService(cartstore.NewMemoryStore(), nil)
	svc.newID = func() string { return "c" }
	ctx := context.Background()
	_, _ = svc.Create(ctx)
	_, _ = svc.Add(ctx, "c", vinyl("1", 10000))
	_, _ = svc.Add(ctx, "c", vinyl("2", 5000))

	v, err := svc.SetQuantity(ctx, "c", "1", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, v.TotalItems)
	assert.Equal(t, 35000.0, v.TotalPrice)

	v, err = svc.Clear(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, v.Items)
	assert.Zero(t, v.TotalPrice)
}

func TestCartService_UnknownCart(t *testing.T) {
	svc := NewCartService(cartstore.NewMemoryStore(), nil)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
	_, err = svc.Add(context.Background(), "nope", vinyl("1", 1))
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestCartService_LoadsFromStore(t *testing.T) {
	store := cartstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "saved", cart.New(cart.Item{ID: "1", UnitPrice: 9990, Quantity: 2})))

	svc := NewCartService(store, nil)
	v, err := svc.Get(context.Background(), "saved")
	require.NoError(t, err)
	assert.Equal(t, 2, v.TotalItems)
	assert.Equal(t, 19980.0, v.TotalPrice)
}

func TestCartService_SaveFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewCartService(failingStore{cartstore.NewMemoryStore()}, zap.New(core))
	svc.newID = func() string { return "c" }
	ctx := context.Background()

	_, err := svc.Create(ctx)
	require.NoError(t, err)
	v, err := svc.Add(ctx, "c", vinyl("1", 1000))
	require.NoError(t, err)
	assert.Equal(t, 1, v.TotalItems)

	v, err = svc.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, v.TotalItems, "the in-memory cart survives a failed save")

	failed := logs.FilterMessage("cart save failed").All()
	require.Len(t, failed, 2)
	assert.Equal(t, "c", failed[0].ContextMap()["cart_id"])
}
