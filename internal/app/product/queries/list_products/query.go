package list_products

import (
	"strings"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

// Criteria selects which products are visible.
// The zero value matches every product.
type Criteria struct {
	// Search is matched case-insensitively as a substring of the product name.
	Search string
	// Category, when set, must equal the product category exactly.
	Category string
	// MaxPrice, when non-zero, is an inclusive price ceiling.
	// Zero means no ceiling; a negative ceiling matches nothing.
	MaxPrice float64
}

// Filter returns the products matching c, preserving their relative order.
// The input slice is never modified.
func Filter(products []domain.Product, c Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	m := c.matcher()
	for _, p := range products {
		if m.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

type matcher struct {
	search   string
	category string
	maxPrice float64
}

func (c Criteria) matcher() matcher {
	return matcher{
		search:   strings.ToLower(c.Search),
		category: c.Category,
		maxPrice: c.MaxPrice,
	}
}

func (m matcher) matches(p domain.Product) bool {
	if m.search != "" && !strings.Contains(strings.ToLower(p.Name), m.search) {
		return false
	}
	if m.category != "" && p.Category != m.category {
		return false
	}
	if m.maxPrice != 0 && p.Price > m.maxPrice {
		return false
	}
	return true
}
