package repo

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/models/m_product"
)

func newTestProduct(t *testing.T, d domain.Draft) domain.Product {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p, err := domain.NewProduct("prod-1", d, now)
	require.NoError(t, err)
	return p
}

// TestInsertMut_OptionalColumnsNull verifies that empty optional fields are written as NULL.
func TestInsertMut_OptionalColumnsNull(t *testing.T) {
	r := NewProductRepo()
	p := newTestProduct(t, domain.Draft{Name: "Apple", Price: 10, Category: "fruit"})

	values := buildInsertValues(p)
	require.NotNil(t, values)

	assert.Equal(t, "prod-1", values[m_product.ColProductID])
	assert.Equal(t, "Apple", values[m_product.ColName])
	assert.Equal(t, 10.0, values[m_product.ColPrice])
	assert.Equal(t, "fruit", values[m_product.ColCategory])
	assert.Equal(t, spanner.NullString{}, values[m_product.ColDescription])
	assert.Equal(t, spanner.NullString{}, values[m_product.ColImage])
	assert.Equal(t, spanner.NullDate{}, values[m_product.ColExpirationDate])
	assert.Equal(t, p.CreatedAt, values[m_product.ColCreatedAt])

	require.NotNil(t, r.InsertMut(p))
}

// TestInsertMut_WithExpiration verifies that the expiration date maps to a civil DATE.
func TestInsertMut_WithExpiration(t *testing.T) {
	p := newTestProduct(t, domain.Draft{
		Name:           "Milk",
		Price:          2.5,
		Description:    "whole milk",
		ExpirationDate: domain.NewDate(2024, time.April, 15),
		Category:       "dairy",
		Image:          "milk.png",
	})

	values := buildInsertValues(p)

	assert.Equal(t, spanner.NullDate{Date: civil.Date{Year: 2024, Month: time.April, Day: 15}, Valid: true},
		values[m_product.ColExpirationDate])
	assert.Equal(t, spanner.NullString{StringVal: "whole milk", Valid: true}, values[m_product.ColDescription])
	assert.Equal(t, spanner.NullString{StringVal: "milk.png", Valid: true}, values[m_product.ColImage])
}

// TestUpdateValues_OnlyDirtyFields verifies that only changed columns are written.
func TestUpdateValues_OnlyDirtyFields(t *testing.T) {
	p := newTestProduct(t, domain.Draft{Name: "Apple", Price: 10, Category: "fruit"})
	price := 9.99
	updated, changes, err := p.Apply(domain.Patch{Price: &price})
	require.NoError(t, err)

	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	values := buildUpdateValues(updated, changes, now)

	require.Len(t, values, 2)
	assert.Equal(t, 9.99, values[m_product.ColPrice])
	assert.Equal(t, now, values[m_product.ColUpdatedAt])
}

func TestUpdateMut_NoChanges(t *testing.T) {
	r := NewProductRepo()
	p := newTestProduct(t, domain.Draft{Name: "Apple", Price: 10})
	name := "Apple"
	same, changes, err := p.Apply(domain.Patch{Name: &name})
	require.NoError(t, err)

	assert.Nil(t, r.UpdateMut(same, changes, time.Now()))
}

func TestDeleteMut(t *testing.T) {
	r := NewProductRepo()
	assert.NotNil(t, r.DeleteMut("prod-1"))
	assert.Nil(t, r.DeleteMut(""))
}

func TestOutboxInsertMut(t *testing.T) {
	r := NewOutboxRepo()
	assert.Nil(t, r.InsertMut(nil))
	assert.NotNil(t, r.InsertMut(&contracts.OutboxEvent{
		EventID:      "ev-1",
		EventType:    domain.EventProductCreated,
		AggregateID:  "prod-1",
		PayloadJSON:  "{}",
		CreatedAtUTC: time.Now(),
	}))
}
