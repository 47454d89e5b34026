package get_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

type mapReadModel map[string]domain.Product

func (m mapReadModel) Products() []domain.Product {
	out := make([]domain.Product, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}

func (m mapReadModel) Find(id string) (domain.Product, bool) {
	p, ok := m[id]
	return p, ok
}

func TestHandler_Execute(t *testing.T) {
	p, err := domain.NewProduct("p1", domain.Draft{Name: "Apple", Price: 1}, time.Now())
	require.NoError(t, err)
	h := NewHandler(mapReadModel{"p1": p})

	got, err := h.Execute(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = h.Execute(context.Background(), "p2")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Contains(t, err.Error(), "p2")
}
