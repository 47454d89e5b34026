package product

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/catalog-store/internal/app/product/catalog"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/app/product/dto"
	"github.com/murkotick/catalog-store/internal/app/product/queries/get_product"
	"github.com/murkotick/catalog-store/internal/app/product/queries/list_products"
)

// Commands is the write side of the catalog, satisfied by *catalog.Store.
type Commands interface {
	Add(ctx context.Context, d domain.Draft) (domain.Product, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error)
	Remove(ctx context.Context, id string) error
	Products() []domain.Product
	PageSize() int
}

var _ Commands = (*catalog.Store)(nil)

// Queries groups read handlers.
type Queries struct {
	Get  *get_product.Handler
	List *list_products.Handler
}

// Handler is a thin HTTP transport adapter.
// It validates input and delegates to the catalog store and the query handlers.
type Handler struct {
	commands Commands
	queries  Queries
}

func NewHandler(cmd Commands, qry Queries) *Handler {
	return &Handler{commands: cmd, queries: qry}
}

func (h *Handler) ListProducts(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.queries.List.Execute(c.Request.Context(), list_products.Query{
		Criteria: list_products.Criteria{
			Search:   params.Search,
			Category: params.Category,
			MaxPrice: params.MaxPrice,
		},
		Page:     params.Page,
		PageSize: h.commands.PageSize(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if params.Page > 0 {
		setPageHeaders(c, res)
	}
	c.JSON(http.StatusOK, res.Items)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.queries.Get.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateDraft(draft); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.commands.Add(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id); err != nil {
		badRequest(c, err)
		return
	}

	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := validatePatch(patch); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.commands.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.commands.Remove(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, domain.CategoriesOf(h.commands.Products()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorBody{Error: err.Error()})
}
