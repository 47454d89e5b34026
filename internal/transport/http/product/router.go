package product

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Register mounts the catalog routes on r.
func Register(r gin.IRouter, h *Handler) {
	r.GET("/produtos", h.ListProducts)
	r.GET("/produtos/:id", h.GetProduct)
	r.POST("/produtos", h.CreateProduct)
	r.PUT("/produtos/:id", h.UpdateProduct)
	r.DELETE("/produtos/:id", h.DeleteProduct)
	r.GET("/categorias", h.ListCategories)
}

// NewRouter builds a gin engine serving the catalog API under /api.
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recover(logger), RequestLogger(logger))
	Register(r.Group("/api"), h)
	return r
}
