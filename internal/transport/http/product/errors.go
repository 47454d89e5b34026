package product

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/catalog-store/internal/app/product/catalog"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/app/product/dto"
)

// mapError translates domain sentinel errors into HTTP status codes.
// Unknown errors become 500 with a generic message.
func mapError(err error) (int, string) {
	msg := err.Error()
	var opErr *catalog.OpError
	if errors.As(err, &opErr) {
		msg = opErr.Err.Error()
	}

	switch {
	case errors.Is(err, context.Canceled):
		return 499, msg
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msg
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, msg
	case domain.IsValidationError(err):
		return http.StatusBadRequest, msg
	}
	return http.StatusInternalServerError, "internal error"
}

func writeError(c *gin.Context, err error) {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, dto.ErrorBody{Error: msg})
}
