package contracts

import (
	"context"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

// BackingStore persists products outside the process lifetime.
// Implementations: repo/remote (HTTP API), repo/local (durable key-value slot)
// and repo/spannerstore (Cloud Spanner).
type BackingStore interface {
	// FetchAll returns every stored product in storage order.
	FetchAll(ctx context.Context) ([]domain.Product, error)

	// Create stores p and returns the record as persisted.
	Create(ctx context.Context, p domain.Product) (domain.Product, error)

	// Update applies patch to the product with the given id and returns the result.
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error)

	// Delete removes the product with the given id.
	Delete(ctx context.Context, id string) error

	// Authoritative reports whether records returned by Create/Update replace
	// the caller's local copy (true) or merely acknowledge it (false).
	Authoritative() bool
}
