package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/catalog"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form/forms"
)

// MemoryStore owns the catalog records written by the back-office forms.
// It is passed explicitly to whoever needs it; nothing reads it globally.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[string]catalog.Product
	users      map[string]catalog.User
	categories map[string]catalog.Category
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   map[string]catalog.Product{},
		users:      map[string]catalog.User{},
		categories: map[string]catalog.Category{},
	}
}

// Submit stores the record described by a validated form. Creating and
// updating are the same operation: the key field decides.
func (s *MemoryStore) Submit(ctx context.Context, formName string, values form.Values) error {
	switch formName {
	case forms.Product:
		p, err := catalog.ProductFromValues(values)
		if err != nil {
			return err
		}
		s.PutProduct(p)
	case forms.User, forms.Register:
		s.PutUser(catalog.UserFromValues(values))
	case forms.Category:
		s.PutCategory(catalog.CategoryFromValues(values))
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedForm, formName)
	}
	return nil
}

func (s *MemoryStore) PutProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.Code] = p
}

func (s *MemoryStore) PutUser(u catalog.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.RUN] = u
}

func (s *MemoryStore) PutCategory(c catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.Name] = c
}

func (s *MemoryStore) Product(code string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[code]
	return p, ok
}

func (s *MemoryStore) User(run string) (catalog.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[run]
	return u, ok
}

// Products lists products ordered by code.
func (s *MemoryStore) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LowStock lists the products at or below their critical stock.
func (s *MemoryStore) LowStock() []catalog.Product {
	var out []catalog.Product
	for _, p := range s.Products() {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}

func (s *MemoryStore) Categories() []catalog.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
