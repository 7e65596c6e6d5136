package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/internal/core/domain"
	logicv1 "github.com/meditrust/storefront/internal/logic/v1"
	"github.com/meditrust/storefront/middleware"
)

// AddItem handles POST /api/cart. Adding a product already in the cart
// merges quantities; the response carries the resulting quantity.
func (h *Handler) AddItem(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.cart_add", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	userID := c.GetInt(ContextUserIDKey)

	var req domain.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID and quantity required"})
		return
	}

	quantity, err := h.cart.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Int("user_id", userID).Int("product_id", req.ProductID).Msg("Add to cart failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID and quantity required"})
		case errors.Is(err, logicv1.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		}
		return
	}

	logger.Info().Int("user_id", userID).Int("product_id", req.ProductID).Int("quantity", quantity).Msg("Cart item added")
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "quantity": quantity})
}

// ListItems handles GET /api/cart. The response is the user's cart
// joined with live catalog data; totals are computed client-side from
// the current transfer prices in this payload, never from stored state.
func (h *Handler) ListItems(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.cart_list", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	userID := c.GetInt(ContextUserIDKey)

	lines, err := h.cart.ListItems(ctx, userID)
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Error().Err(err).Int("user_id", userID).Msg("Fetch cart failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, lines)
}

// UpdateQuantity handles POST /api/cart/update. Unlike AddItem this is
// an absolute set: the entry's quantity becomes exactly the requested
// value.
func (h *Handler) UpdateQuantity(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.cart_update", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	userID := c.GetInt(ContextUserIDKey)

	var req domain.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID and quantity required"})
		return
	}

	if err := h.cart.UpdateQuantity(ctx, userID, req.ProductID, req.Quantity); err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Int("user_id", userID).Int("product_id", req.ProductID).Msg("Cart update failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID and quantity required"})
		case errors.Is(err, logicv1.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated successfully"})
}

// RemoveItem handles DELETE /api/cart/remove/:productId. Removing an
// item that is not in the cart answers 404.
func (h *Handler) RemoveItem(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.cart_remove", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := zerolog.Ctx(ctx)
	userID := c.GetInt(ContextUserIDKey)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID required"})
		return
	}

	if err := h.cart.RemoveItem(ctx, userID, productID); err != nil {
		span.RecordError(err)
		logger.Error().Err(err).Int("user_id", userID).Int("product_id", productID).Msg("Cart remove failed")

		switch {
		case errors.Is(err, logicv1.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
