// Package catalog holds the client-side catalog state: the product records
// mirrored from a backing store, the active filter criteria and the current
// page of the filtered view.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/app/product/queries/list_products"
	"github.com/murkotick/catalog-store/internal/pkg/clock"
)

// Store owns the catalog and keeps it consistent with a backing store.
//
// The mutex guards in-memory state only and is never held across a backing
// store call, so overlapping operations take effect in the order their
// backing store responses arrive.
type Store struct {
	backend  contracts.BackingStore
	clock    clock.Clock
	newID    func() string
	log      *slog.Logger
	pageSize int

	mu       sync.Mutex
	products []domain.Product
	version  uint64
	criteria list_products.Criteria
	page     int
	lastErr  error

	// filtered view cache, valid while cacheVersion == version and
	// cacheCriteria == criteria
	cache         []domain.Product
	cacheVersion  uint64
	cacheCriteria list_products.Criteria
	cacheValid    bool

	subMu   sync.Mutex
	subs    map[int]func(domain.CatalogEvent)
	nextSub int
}

// New creates an empty store on top of backend. Call Load to hydrate it.
func New(backend contracts.BackingStore, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		clock:    clock.RealClock{},
		newID:    uuid.NewString,
		log:      slog.Default(),
		pageSize: list_products.DefaultPageSize,
		products: []domain.Product{},
		page:     1,
		subs:     make(map[int]func(domain.CatalogEvent)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the catalog with the backing store content.
// A failure leaves the catalog untouched; it is recorded in the error slot and
// announced to subscribers but not returned.
func (s *Store) Load(ctx context.Context) {
	products, err := s.backend.FetchAll(ctx)
	if err != nil {
		_ = s.fail(&OpError{Kind: FetchFailed, Err: err})
		return
	}

	s.mu.Lock()
	s.products = clone(products)
	s.version++
	n := len(s.products)
	s.mu.Unlock()

	s.log.Info("catalog loaded", "count", n)
	s.publish(&domain.CatalogLoadedEvent{Count: n, LoadedAt: s.clock.Now()})
}

// Add creates a product from d. The id and creation time are generated here;
// an authoritative backing store may replace them with its own.
func (s *Store) Add(ctx context.Context, d domain.Draft) (domain.Product, error) {
	p, err := domain.NewProduct(s.newID(), d, s.clock.Now())
	if err != nil {
		return domain.Product{}, s.fail(&OpError{Kind: CreateFailed, Err: err})
	}

	saved, err := s.backend.Create(ctx, p)
	if err != nil {
		return domain.Product{}, s.fail(&OpError{Kind: CreateFailed, Err: err})
	}
	if !s.backend.Authoritative() || saved.ID == "" {
		saved = p
	}

	s.mu.Lock()
	s.products = append(s.products, saved)
	s.version++
	s.mu.Unlock()

	s.log.Debug("product added", "id", saved.ID)
	s.publish(&domain.ProductCreatedEvent{Product: saved, CreatedAt: s.clock.Now()})
	return saved, nil
}

// Update applies patch to the product with the given id.
// The backing store is called even when the catalog has no such entry; in that
// case the catalog stays as it is.
func (s *Store) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	updated, err := s.backend.Update(ctx, id, patch)
	if err != nil {
		return domain.Product{}, s.fail(&OpError{Kind: UpdateFailed, ID: id, Err: err})
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Debug("updated product not in catalog", "id", id)
		return updated, nil
	}

	current := s.products[idx]
	var (
		next    domain.Product
		changes *domain.ChangeTracker
	)
	if s.backend.Authoritative() {
		next = updated
		changes = domain.Diff(current, updated)
	} else {
		next, changes, err = current.Apply(patch)
		if err != nil {
			s.mu.Unlock()
			return domain.Product{}, s.fail(&OpError{Kind: UpdateFailed, ID: id, Err: err})
		}
	}
	s.products[idx] = next
	s.version++
	s.mu.Unlock()

	s.publish(&domain.ProductUpdatedEvent{
		ProductID: id,
		UpdatedAt: s.clock.Now(),
		Changes:   next.FieldValues(changes.DirtyFields()),
	})
	return next, nil
}

// Remove deletes the product with the given id.
// Only the first matching entry is dropped; the rest keep their order.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return s.fail(&OpError{Kind: DeleteFailed, ID: id, Err: err})
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx >= 0 {
		next := make([]domain.Product, 0, len(s.products)-1)
		next = append(next, s.products[:idx]...)
		next = append(next, s.products[idx+1:]...)
		s.products = next
		s.version++
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.publish(&domain.ProductDeletedEvent{ProductID: id, DeletedAt: s.clock.Now()})
	}
	return nil
}

// Products returns a copy of the catalog in arrival order.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.products)
}

// Find returns the catalog entry with the given id.
func (s *Store) Find(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.products[idx], true
	}
	return domain.Product{}, false
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// Filtered returns the products matching the current criteria.
func (s *Store) Filtered() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.filteredLocked())
}

// Page returns the current page of the filtered view.
func (s *Store) Page() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return list_products.Paginate(s.filteredLocked(), s.page, s.pageSize)
}

// TotalPages returns the number of pages of the filtered view (0 when empty).
func (s *Store) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return list_products.TotalPages(len(s.filteredLocked()), s.pageSize)
}

// CurrentPage returns the 1-based current page number.
func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the fixed page size.
func (s *Store) PageSize() int {
	return s.pageSize
}

// Criteria returns the current filter criteria.
func (s *Store) Criteria() list_products.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces the filter criteria. A change resets the current page to 1.
func (s *Store) SetCriteria(c list_products.Criteria) {
	s.mu.Lock()
	if c == s.criteria {
		s.mu.Unlock()
		return
	}
	s.criteria = c
	s.page = 1
	s.mu.Unlock()

	s.publish(&domain.CriteriaChangedEvent{
		Search:    c.Search,
		Category:  c.Category,
		MaxPrice:  c.MaxPrice,
		ChangedAt: s.clock.Now(),
	})
}

// SetSearch changes the search term only.
func (s *Store) SetSearch(term string) {
	c := s.Criteria()
	c.Search = term
	s.SetCriteria(c)
}

// SetCategory changes the category constraint only. "" removes it.
func (s *Store) SetCategory(category string) {
	c := s.Criteria()
	c.Category = category
	s.SetCriteria(c)
}

// SetMaxPrice changes the price ceiling only. 0 removes it.
func (s *Store) SetMaxPrice(max float64) {
	c := s.Criteria()
	c.MaxPrice = max
	s.SetCriteria(c)
}

// SetPage moves to page n. It is not checked against TotalPages; n < 1 becomes 1.
func (s *Store) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	if n == s.page {
		s.mu.Unlock()
		return
	}
	s.page = n
	s.mu.Unlock()

	s.publish(&domain.PageChangedEvent{Page: n, ChangedAt: s.clock.Now()})
}

// Err returns the message of the latest failure, or "" if none was recorded
// since construction or the last ClearError.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return ""
	}
	return s.lastErr.Error()
}

// LastError returns the latest failure as an *OpError, or nil.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError empties the error slot. Successful operations never do this.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// Subscribe registers fn for catalog events. Events are delivered
// synchronously, after the state change, from the goroutine that caused it.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(domain.CatalogEvent)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) fail(err *OpError) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.log.Error("catalog operation failed", "op", err.Kind.String(), "id", err.ID, "err", err.Err)
	s.publish(&domain.CatalogErrorEvent{
		Operation: err.Kind.String(),
		ProductID: err.ID,
		Message:   err.Error(),
		At:        s.clock.Now(),
	})
	return err
}

func (s *Store) publish(ev domain.CatalogEvent) {
	s.subMu.Lock()
	fns := make([]func(domain.CatalogEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// filteredLocked returns the cached filtered view, recomputing it when the
// catalog or the criteria changed since the last call. Callers hold s.mu and
// must not let the slice escape.
func (s *Store) filteredLocked() []domain.Product {
	if s.cacheValid && s.cacheVersion == s.version && s.cacheCriteria == s.criteria {
		return s.cache
	}
	s.cache = list_products.Filter(s.products, s.criteria)
	s.cacheVersion = s.version
	s.cacheCriteria = s.criteria
	s.cacheValid = true
	return s.cache
}

func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	copy(out, in)
	return out
}
