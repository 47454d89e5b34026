package spannerstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

func TestMarshalEventPayload(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p, err := domain.NewProduct("p1", domain.Draft{Name: "Apple", Price: 1, Category: "fruit"}, at)
	require.NoError(t, err)

	got, err := marshalEventPayload(&domain.ProductCreatedEvent{Product: p, CreatedAt: at})
	require.NoError(t, err)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &created))
	assert.Equal(t, "p1", created["product_id"])
	assert.Equal(t, "Apple", created["product"].(map[string]interface{})["name"])
	assert.Equal(t, "2024-03-01T12:00:00Z", created["created_at"])

	got, err = marshalEventPayload(&domain.ProductUpdatedEvent{
		ProductID: "p1",
		UpdatedAt: at,
		Changes:   map[string]interface{}{domain.FieldPrice: 2.5},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"p1","changes":{"price":2.5},"updated_at":"2024-03-01T12:00:00Z"}`, got)

	got, err = marshalEventPayload(&domain.ProductDeletedEvent{ProductID: "p1", DeletedAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"p1","deleted_at":"2024-03-01T12:00:00Z"}`, got)

	got, err = marshalEventPayload(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	_, err = marshalEventPayload(&domain.PageChangedEvent{Page: 2})
	assert.Error(t, err)
}
