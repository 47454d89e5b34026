package list_products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := seq(12)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, Paginate(items, 1, 5))
	assert.Equal(t, []int{5, 6, 7, 8, 9}, Paginate(items, 2, 5))
	assert.Equal(t, []int{10, 11}, Paginate(items, 3, 5))
	assert.Equal(t, []int{}, Paginate(items, 4, 5))
	assert.Equal(t, []int{}, Paginate(items, 0, 5))
	assert.Equal(t, []int{}, Paginate(items, -1, 5))
	assert.Equal(t, []int{}, Paginate(items, 1, 0))
	assert.Equal(t, []int{}, Paginate([]int(nil), 1, 5))
}

func TestPaginate_ReturnsCopy(t *testing.T) {
	items := seq(3)
	page := Paginate(items, 1, 2)
	page[0] = 99
	assert.Equal(t, 0, items[0])
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 3, TotalPages(11, 5))
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 0, TotalPages(10, 0))
}
