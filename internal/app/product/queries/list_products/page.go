package list_products

// DefaultPageSize is the number of products per page when none is configured.
const DefaultPageSize = 10

// Paginate returns the 1-based page of items with the given size:
// items[(page-1)*size : page*size] clipped to the slice bounds.
// Out-of-range pages and non-positive sizes yield an empty page.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// TotalPages is ceil(n/size). An empty view has 0 pages.
func TotalPages(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}
