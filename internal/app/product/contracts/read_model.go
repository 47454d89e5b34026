package contracts

import "github.com/murkotick/catalog-store/internal/app/product/domain"

// ReadModel is the read side queries run against. catalog.Store implements it
// from its in-memory catalog.
type ReadModel interface {
	Products() []domain.Product
	Find(id string) (domain.Product, bool)
}
