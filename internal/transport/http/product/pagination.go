package product

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/catalog-store/internal/app/product/dto"
	"github.com/murkotick/catalog-store/internal/app/product/queries/list_products"
)

// parseListParams reads the GET /produtos query. An absent page means "all matches".
func parseListParams(c *gin.Context) (dto.ListParams, error) {
	params := dto.ListParams{
		Search:   c.Query(dto.ParamSearch),
		Category: c.Query(dto.ParamCategory),
	}

	if raw := c.Query(dto.ParamMaxPrice); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return dto.ListParams{}, fmt.Errorf("invalid %s %q", dto.ParamMaxPrice, raw)
		}
		params.MaxPrice = v
	}

	if raw := c.Query(dto.ParamPage); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return dto.ListParams{}, fmt.Errorf("invalid %s %q", dto.ParamPage, raw)
		}
		params.Page = v
	}
	return params, nil
}

func setPageHeaders(c *gin.Context, res *list_products.Result) {
	c.Header(dto.HeaderTotalCount, strconv.Itoa(res.Total))
	c.Header(dto.HeaderTotalPages, strconv.Itoa(res.TotalPages))
}
