package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ID is the opaque product key of a line item. Clients send it either as a
// JSON string or as a number; null decodes to the empty ID.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*id = ID(v)
	case float64:
		*id = ID(strconv.FormatFloat(v, 'f', -1, 64))
	case nil:
		*id = ""
	default:
		return fmt.Errorf("cart item id must be a string or a number, got %s", strings.TrimSpace(string(data)))
	}
	return nil
}

// Item is one line of the cart. Display fields are copied when the product
// is first added and are never refreshed from the catalog.
type Item struct {
	ID        ID      `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Artist    string  `json:"artist,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
}

// UnmarshalJSON accepts the field spellings used by the different pages
// that write carts. A price that is missing or unreadable counts as 0.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        ID     `json:"id"`
		Name      string `json:"name"`
		Nombre    string `json:"nombre"`
		Price     any    `json:"price"`
		Precio    any    `json:"precio"`
		UnitPrice any    `json:"unitPrice"`
		Image     string `json:"image"`
		Imagen    string `json:"imagen"`
		Artist    string `json:"artist"`
		Artista   string `json:"artista"`
		Category  string `json:"category"`
		Categoria string `json:"categoria"`
		Quantity  any    `json:"quantity"`
		Cantidad  any    `json:"cantidad"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = Item{
		ID:        raw.ID,
		Name:      coalesce(raw.Name, raw.Nombre),
		UnitPrice: number(raw.Price, raw.Precio, raw.UnitPrice),
		Image:     coalesce(raw.Image, raw.Imagen),
		Artist:    coalesce(raw.Artist, raw.Artista),
		Category:  coalesce(raw.Category, raw.Categoria),
		Quantity:  int(number(raw.Quantity, raw.Cantidad)),
	}
	return nil
}

// Subtotal is quantity times unit price.
func (it Item) Subtotal() float64 {
	return it.subtotal().InexactFloat64()
}

func (it Item) subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func number(vals ...any) float64 {
	for _, v := range vals {
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f
			}
		}
	}
	return 0
}
