package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/middleware"
)

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.products_list", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Error().Err(err).Msg("Fetch medicines failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
		return
	}

	c.JSON(http.StatusOK, products)
}
