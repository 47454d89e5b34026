package get_product

import (
	"context"
	"fmt"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

// Execute returns the product with the given id.
func (h *Handler) Execute(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	p, ok := h.readModel.Find(productID)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return p, nil
}
