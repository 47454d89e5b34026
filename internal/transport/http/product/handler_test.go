package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-store/internal/app/product/catalog"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/app/product/dto"
	"github.com/murkotick/catalog-store/internal/app/product/queries/get_product"
	"github.com/murkotick/catalog-store/internal/app/product/queries/list_products"
	"github.com/murkotick/catalog-store/internal/app/product/repo/local"
	"github.com/murkotick/catalog-store/internal/pkg/clock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Store) {
	t.Helper()

	slot, err := local.OpenMemLevelDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.Close() })

	seq := 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := catalog.New(local.New(slot, "", local.RequireExisting()),
		catalog.WithClock(clock.NewFake(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))),
		catalog.WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
		catalog.WithLogger(logger),
		catalog.WithPageSize(2),
	)
	store.Load(context.Background())
	require.Empty(t, store.Err())

	h := NewHandler(store, Queries{
		Get:  get_product.NewHandler(store),
		List: list_products.NewHandler(store),
	})
	return NewRouter(h, logger), store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCreateProduct(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/produtos", domain.Draft{
		Name:           "Milk",
		Price:          2.5,
		ExpirationDate: domain.NewDate(2024, time.June, 1),
		Category:       "dairy",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, "2024-06-01", got.ExpirationDate.String())
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), got.CreatedAt)

	assert.Equal(t, 1, store.Len())
}

func TestCreateProduct_Validation(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/produtos", domain.Draft{Name: "  ", Price: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name is required", decodeError(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/produtos", map[string]interface{}{
		"name":            "Milk",
		"expiration_date": "next week",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 0, store.Len())
}

func TestGetProduct(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/produtos", domain.Draft{Name: "Apple", Price: 1})

	w := doJSON(t, r, http.MethodGet, "/api/produtos/id-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Apple", got.Name)

	w = doJSON(t, r, http.MethodGet, "/api/produtos/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeError(t, w), "product not found")
}

func TestListProducts_FiltersAndPages(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, d := range []domain.Draft{
		{Name: "Apple", Price: 10, Category: "fruit"},
		{Name: "Pineapple", Price: 4, Category: "fruit"},
		{Name: "Apple juice", Price: 3, Category: "drinks"},
		{Name: "Bread", Price: 2, Category: "bakery"},
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/produtos", d).Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/produtos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 4)
	assert.Empty(t, w.Header().Get(dto.HeaderTotalCount))

	w = doJSON(t, r, http.MethodGet, "/api/produtos?search=APP&maxPrice=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cheap []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cheap))
	require.Len(t, cheap, 2)
	assert.Equal(t, "Pineapple", cheap[0].Name)
	assert.Equal(t, "Apple juice", cheap[1].Name)

	w = doJSON(t, r, http.MethodGet, "/api/produtos?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 2)
	assert.Equal(t, "Apple juice", page[0].Name)
	assert.Equal(t, "4", w.Header().Get(dto.HeaderTotalCount))
	assert.Equal(t, "2", w.Header().Get(dto.HeaderTotalPages))

	w = doJSON(t, r, http.MethodGet, "/api/produtos?page=9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListProducts_BadQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/produtos?maxPrice=cheap", nil).Code)
	for _, q := range []string{"NaN", "Inf", "-Inf", "%2BInf"} {
		w := doJSON(t, r, http.MethodGet, "/api/produtos?maxPrice="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/produtos?page=0", nil).Code)
}

func TestUpdateProduct(t *testing.T) {
	r, store := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/produtos", domain.Draft{Name: "Apple", Price: 10})

	w := doJSON(t, r, http.MethodPut, "/api/produtos/id-1", map[string]interface{}{"price": 9.99})
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, "Apple", got.Name)

	p, ok := store.Find("id-1")
	require.True(t, ok)
	assert.Equal(t, 9.99, p.Price)

	w = doJSON(t, r, http.MethodPut, "/api/produtos/missing", map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/produtos/id-1", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/produtos/id-1", map[string]interface{}{"price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrNegativePrice.Error(), decodeError(t, w))
}

func TestDeleteProduct(t *testing.T) {
	r, store := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/produtos", domain.Draft{Name: "Apple", Price: 1})

	w := doJSON(t, r, http.MethodDelete, "/api/produtos/id-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, store.Len())

	w = doJSON(t, r, http.MethodDelete, "/api/produtos/id-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCategories(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, d := range []domain.Draft{
		{Name: "Milk", Category: "dairy"},
		{Name: "Apple", Category: "fruit"},
		{Name: "Cheese", Category: "dairy"},
		{Name: "Mystery"},
	} {
		doJSON(t, r, http.MethodPost, "/api/produtos", d)
	}

	w := doJSON(t, r, http.MethodGet, "/api/categorias", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []domain.Category{{ID: "dairy", Name: "dairy"}, {ID: "fruit", Name: "fruit"}}, got)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", &catalog.OpError{Kind: catalog.UpdateFailed, ID: "x", Err: domain.ErrProductNotFound}, http.StatusNotFound, "product not found"},
		{"validation", &catalog.OpError{Kind: catalog.CreateFailed, Err: domain.ErrEmptyProductName}, http.StatusBadRequest, domain.ErrEmptyProductName.Error()},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, context.DeadlineExceeded.Error()},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}
