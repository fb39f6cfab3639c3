package cart_test

import (
	"testing"

	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, price float64) cart.Item {
	return cart.Item{ID: cart.ID(id), Name: "Disco " + id, UnitPrice: price, Artist: "Artista"}
}

func sumLines(c cart.Cart) float64 {
	total := 0.0
	for _, it := range c.Items() {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}

func TestAdd_MergesSameID(t *testing.T) {
	c := cart.Cart{}
	c = c.Add(record("1", 25000))
	c = c.Add(record("1", 25000))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.TotalItems())
	assert.Equal(t, 50000.0, c.TotalPrice())
	it, ok := c.Item("1")
	require.True(t, ok)
	assert.Equal(t, 2, it.Quantity)
}

func TestAdd_NTimes(t *testing.T) {
	c := cart.Cart{}
	for i := 0; i < 7; i++ {
		c = c.Add(record("42", 1000))
		assert.Equal(t, i+1, c.TotalItems())
	}
	assert.Equal(t, 1, c.Len())
}

func TestAdd_FirstSeenMetadataWins(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 10000))
	changed := record("1", 8000)
	changed.Name = "Otro nombre"
	c = c.Add(changed)

	it, _ := c.Item("1")
	assert.Equal(t, 10000.0, it.UnitPrice)
	assert.Equal(t, "Disco 1", it.Name)
	assert.Equal(t, 2, it.Quantity)
}

func TestAdd_IgnoresSuppliedQuantity(t *testing.T) {
	it := record("1", 100)
	it.Quantity = 9
	c := cart.Cart{}.Add(it)
	assert.Equal(t, 1, c.TotalItems())
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := cart.Cart{}.Add(record("b", 1)).Add(record("a", 1)).Add(record("b", 1))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, cart.ID("b"), items[0].ID)
	assert.Equal(t, cart.ID("a"), items[1].ID)
}

func TestAdd_DoesNotMutateReceiver(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 100))
	_ = c.Add(record("1", 100))
	_ = c.SetQuantity("1", 5)
	assert.Equal(t, 1, c.TotalItems())
}

func TestSetQuantity(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 10000))

	c = c.SetQuantity("1", 3)
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 30000.0, c.TotalPrice())

	c = c.SetQuantity("1", 0)
	assert.True(t, c.IsEmpty())

	c = cart.Cart{}.Add(record("1", 10000)).SetQuantity("1", -4)
	assert.Equal(t, 0, c.Len())
}

func TestAbsentIDIsNoOp(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 100))
	assert.Equal(t, c.Items(), c.Remove("x").Items())
	assert.Equal(t, c.Items(), c.SetQuantity("x", 3).Items())
	assert.Equal(t, c.Items(), c.SetQuantity("x", 0).Items())
}

func TestRemoveAndClear(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 100)).Add(record("2", 200)).Add(record("3", 300))
	c = c.Remove("2")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 400.0, c.TotalPrice())

	c = c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestTotalPriceIdentity(t *testing.T) {
	c := cart.Cart{}
	steps := []func(cart.Cart) cart.Cart{
		func(c cart.Cart) cart.Cart { return c.Add(record("1", 19990)) },
		func(c cart.Cart) cart.Cart { return c.Add(record("2", 0.1)) },
		func(c cart.Cart) cart.Cart { return c.Add(record("2", 0.1)) },
		func(c cart.Cart) cart.Cart { return c.SetQuantity("1", 4) },
		func(c cart.Cart) cart.Cart { return c.Add(record("3", 12500.5)) },
		func(c cart.Cart) cart.Cart { return c.Remove("1") },
		func(c cart.Cart) cart.Cart { return c.SetQuantity("3", 0) },
		func(c cart.Cart) cart.Cart { return c.Clear() },
	}
	for i, step := range steps {
		c = step(c)
		assert.InDelta(t, sumLines(c), c.TotalPrice(), 1e-9, "step %d", i)
		for _, it := range c.Items() {
			assert.Positive(t, it.Quantity, "step %d", i)
		}
	}
}

func TestDecimalTotals(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 0.1)).Add(record("2", 0.2))
	assert.Equal(t, 0.3, c.TotalPrice())
}

func TestNew_NormalizesStoredItems(t *testing.T) {
	c := cart.New(
		cart.Item{ID: "1", UnitPrice: 10, Quantity: 2},
		cart.Item{ID: "2", UnitPrice: 10, Quantity: 0},
		cart.Item{ID: "1", UnitPrice: 99, Quantity: 1},
	)
	require.Equal(t, 1, c.Len())
	it, _ := c.Item("1")
	assert.Equal(t, 3, it.Quantity)
	assert.Equal(t, 10.0, it.UnitPrice)
}

func TestUnmarshal_AlternateFieldNames(t *testing.T) {
	data := []byte(`[
		{"id": 1, "nombre": "Clics Modernos", "precio": 18990, "cantidad": 2, "artista": "Charly García"},
		{"id": "lp-2", "name": "Canción Animal", "unitPrice": "15990.5", "quantity": 1},
		{"id": "lp-3", "name": "Sin precio", "quantity": 3}
	]`)
	var c cart.Cart
	require.NoError(t, json.Unmarshal(data, &c))
	require.Equal(t, 3, c.Len())

	first, ok := c.Item("1")
	require.True(t, ok)
	assert.Equal(t, "Clics Modernos", first.Name)
	assert.Equal(t, "Charly García", first.Artist)
	assert.Equal(t, 18990.0, first.UnitPrice)

	second, _ := c.Item("lp-2")
	assert.Equal(t, 15990.5, second.UnitPrice)

	third, _ := c.Item("lp-3")
	assert.Equal(t, 0.0, third.UnitPrice)

	assert.Equal(t, 6, c.TotalItems())
	assert.Equal(t, 2*18990.0+15990.5, c.TotalPrice())
}

func TestMarshalRoundTrip(t *testing.T) {
	c := cart.Cart{}.Add(record("1", 25000)).Add(record("1", 25000)).Add(record("2", 9990))
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var back cart.Cart
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.Items(), back.Items())

	empty, err := json.Marshal(cart.Cart{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestUnmarshal_RejectsStructuredID(t *testing.T) {
	var it cart.Item
	assert.Error(t, json.Unmarshal([]byte(`{"id": {"x": 1}, "precio": 5}`), &it))
	assert.Error(t, json.Unmarshal([]byte(`{"id": [1], "precio": 5}`), &it))
	assert.Error(t, json.Unmarshal([]byte(`{"id": false}`), &it))

	require.NoError(t, json.Unmarshal([]byte(`{"id": 12.5}`), &it))
	assert.Equal(t, cart.ID("12.5"), it.ID)
	require.NoError(t, json.Unmarshal([]byte(`{"nombre": "Sin id"}`), &it))
	assert.Equal(t, cart.ID(""), it.ID)
}
