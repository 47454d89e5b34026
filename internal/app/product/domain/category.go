package domain

import (
	"sort"
	"strings"
)

// Category is a product category as listed by the catalog API.
// Products reference categories by name; the reference is not enforced.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoriesOf returns the distinct non-empty categories of products, sorted by name.
func CategoriesOf(products []Product) []Category {
	seen := make(map[string]struct{})
	out := make([]Category, 0)
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Category{ID: name, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
