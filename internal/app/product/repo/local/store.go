// Package local is the backing store that keeps the whole catalog as one JSON
// document in a durable key-value slot.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

// DefaultKey is the slot key holding the catalog.
const DefaultKey = "products"

// Store implements contracts.BackingStore over a Slot. Every mutation reads
// the snapshot, modifies it and overwrites the slot in full before returning.
//
// Updating or deleting an id that is not stored leaves the slot untouched and
// succeeds, unless the store was built with RequireExisting.
type Store struct {
	slot            Slot
	key             string
	requireExisting bool

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// RequireExisting makes Update and Delete of an unknown id fail with
// domain.ErrProductNotFound. The API server uses it to answer 404.
func RequireExisting() Option {
	return func(s *Store) { s.requireExisting = true }
}

// New returns a store keeping the catalog under key ("" means DefaultKey).
func New(slot Slot, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{slot: slot, key: key}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authoritative is false: the caller's product is what gets stored.
func (s *Store) Authoritative() bool { return false }

// FetchAll returns the stored catalog, or an empty one if the slot was never written.
func (s *Store) FetchAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.save(append(products, p)); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return domain.Product{}, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return domain.Product{}, s.missing(id)
	}
	updated, _, err := products[idx].Apply(patch)
	if err != nil {
		return domain.Product{}, err
	}
	products[idx] = updated
	if err := s.save(products); err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return s.missing(id)
	}
	return s.save(append(products[:idx], products[idx+1:]...))
}

// missing is the result of touching an id that is not stored: nil, or
// ErrProductNotFound under RequireExisting.
func (s *Store) missing(id string) error {
	if !s.requireExisting {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

func (s *Store) load() ([]domain.Product, error) {
	raw, err := s.slot.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("local: read %q: %w", s.key, err)
	}
	products := make([]domain.Product, 0)
	if len(raw) == 0 {
		return products, nil
	}
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("local: decode %q: %w", s.key, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Store) save(products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("local: encode catalog: %w", err)
	}
	if err := s.slot.Put(s.key, raw); err != nil {
		return fmt.Errorf("local: write %q: %w", s.key, err)
	}
	return nil
}

func indexOf(products []domain.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
