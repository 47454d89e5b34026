package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/models/m_product"
)

// ProductRepo is the Spanner implementation of contracts.ProductRepo.
// It returns *spanner.Mutation objects but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(p.ID, p.Name, p.Price, p.Description,
		p.ExpirationDate.Time(), p.Category, p.Image, p.CreatedAt, p.CreatedAt)
}

// buildUpdateValues maps the dirty fields of changes to column values.
// It returns nil when nothing changed.
func buildUpdateValues(p domain.Product, changes *domain.ChangeTracker, now time.Time) map[string]interface{} {
	if !changes.HasChanges() {
		return nil
	}

	updates := map[string]interface{}{}
	if changes.Dirty(domain.FieldName) {
		updates[m_product.ColName] = p.Name
	}
	if changes.Dirty(domain.FieldPrice) {
		updates[m_product.ColPrice] = p.Price
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_product.ColDescription] = m_product.NullableString(p.Description)
	}
	if changes.Dirty(domain.FieldExpirationDate) {
		updates[m_product.ColExpirationDate] = m_product.NullableDate(p.ExpirationDate.Time())
	}
	if changes.Dirty(domain.FieldCategory) {
		updates[m_product.ColCategory] = p.Category
	}
	if changes.Dirty(domain.FieldImage) {
		updates[m_product.ColImage] = m_product.NullableString(p.Image)
	}
	if len(updates) == 0 {
		return nil
	}

	updates[m_product.ColUpdatedAt] = now.UTC()
	return updates
}

// InsertMut builds an Insert mutation for a new product.
func (r *ProductRepo) InsertMut(p domain.Product) *spanner.Mutation {
	return m_product.InsertMutation(buildInsertValues(p))
}

// UpdateMut builds an Update mutation for the fields marked in changes and
// stamps updated_at. It returns nil when there is nothing to write.
func (r *ProductRepo) UpdateMut(p domain.Product, changes *domain.ChangeTracker, now time.Time) *spanner.Mutation {
	values := buildUpdateValues(p, changes, now)
	if values == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID, values)
}

// DeleteMut builds a Delete mutation for the product row.
func (r *ProductRepo) DeleteMut(id string) *spanner.Mutation {
	if id == "" {
		return nil
	}
	return m_product.DeleteMutation(id)
}
