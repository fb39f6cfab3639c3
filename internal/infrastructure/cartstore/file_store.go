package cartstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/goccy/go-json"
)

var safeID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileStore keeps one JSON document per cart under Dir.
type FileStore struct {
	Dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart dir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

// Load returns domain.ErrCartNotFound when no document exists for id.
func (s *FileStore) Load(ctx context.Context, id string) (cart.Cart, error) {
	path, err := s.path(id)
	if err != nil {
		return cart.Cart{}, err
	}
	s.mu.Lock()
	data, err := os.ReadFile(path)
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return cart.Cart{}, fmt.Errorf("%w: %s", domain.ErrCartNotFound, id)
	}
	if err != nil {
		return cart.Cart{}, err
	}
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return cart.Cart{}, fmt.Errorf("decode cart %s: %w", id, err)
	}
	return c, nil
}

// Save writes the cart through a temporary file so readers never see a
// partial document.
func (s *FileStore) Save(ctx context.Context, id string, c cart.Cart) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) path(id string) (string, error) {
	if !safeID.MatchString(id) {
		return "", fmt.Errorf("%w: invalid id %q", domain.ErrCartNotFound, id)
	}
	return filepath.Join(s.Dir, id+".json"), nil
}
