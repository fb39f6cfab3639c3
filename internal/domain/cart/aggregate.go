package cart

import (
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Cart is an immutable, ordered collection of line items. Items keep the
// order in which their product was first added.
type Cart struct {
	items []Item
}

// New builds a cart from stored items. Lines with a non-positive quantity
// are dropped and repeated ids are folded into the first occurrence.
func New(items ...Item) Cart {
	var c Cart
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i := c.index(it.ID); i >= 0 {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Items returns a copy of the line items.
func (c Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c Cart) Len() int { return len(c.items) }

func (c Cart) IsEmpty() bool { return len(c.items) == 0 }

// Item looks up the line of id.
func (c Cart) Item(id ID) (Item, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return Item{}, false
}

// Add puts one unit of item in the cart. An existing line only gains one
// unit; its stored name, price and picture are kept as first seen.
func (c Cart) Add(item Item) Cart {
	next := c.clone()
	if i := next.index(item.ID); i >= 0 {
		next.items[i].Quantity++
		return next
	}
	item.Quantity = 1
	next.items = append(next.items, item)
	return next
}

// Remove drops the line of id. Removing an absent id returns c unchanged.
func (c Cart) Remove(id ID) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	next := Cart{items: make([]Item, 0, len(c.items)-1)}
	next.items = append(next.items, c.items[:i]...)
	next.items = append(next.items, c.items[i+1:]...)
	return next
}

// SetQuantity overwrites the quantity of id. A quantity of zero or less
// removes the line; an absent id returns c unchanged.
func (c Cart) SetQuantity(id ID, quantity int) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	if quantity <= 0 {
		return c.Remove(id)
	}
	next := c.clone()
	next.items[i].Quantity = quantity
	return next
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart { return Cart{} }

// TotalItems is the sum of all quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of quantity times unit price over all lines.
func (c Cart) TotalPrice() float64 {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.subtotal())
	}
	return total.InexactFloat64()
}

func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = New(items...)
	return nil
}

func (c Cart) index(id ID) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	return Cart{items: c.Items()}
}
