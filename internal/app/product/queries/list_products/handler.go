package list_products

import (
	"context"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

// Query asks for one page of the filtered catalog.
// Page 0 means "no paging": every match is returned.
type Query struct {
	Criteria Criteria
	Page     int
	PageSize int
}

// Result is a filtered, optionally paged, view.
type Result struct {
	Items      []domain.Product
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context, q Query) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	filtered := Filter(h.readModel.Products(), q.Criteria)
	res := &Result{
		Items:      filtered,
		Total:      len(filtered),
		Page:       q.Page,
		PageSize:   size,
		TotalPages: TotalPages(len(filtered), size),
	}
	if q.Page > 0 {
		res.Items = Paginate(filtered, q.Page, size)
	}
	return res, nil
}
