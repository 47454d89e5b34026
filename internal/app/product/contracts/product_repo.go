package contracts

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

// ProductRepo builds Spanner mutations for product rows.
// Methods return mutations; they do not apply them.
type ProductRepo interface {
	// InsertMut returns a mutation that inserts the product.
	InsertMut(p domain.Product) *spanner.Mutation

	// UpdateMut returns a mutation writing the fields marked in changes and
	// stamping updated_at with now (or nil when nothing changed).
	UpdateMut(p domain.Product, changes *domain.ChangeTracker, now time.Time) *spanner.Mutation

	// DeleteMut returns a mutation that deletes the product row.
	DeleteMut(id string) *spanner.Mutation
}
