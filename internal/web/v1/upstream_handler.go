package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/internal/core/domain"
	"github.com/meditrust/storefront/middleware"
)

// VerifyLicense handles POST /api/verify-license by relaying the check
// to the external verifier. An upstream failure reports the license as
// unverified rather than leaving the caller guessing.
func (h *Handler) VerifyLicense(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.verify_license", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	var req domain.VerifyLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "License number is required"})
		return
	}

	result, err := h.upstream.VerifyLicense(ctx, req.LicenseNumber)
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Error().Err(err).Msg("License verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify license", "verified": false})
		return
	}

	c.JSON(http.StatusOK, result)
}

// PredictDemand handles POST /api/predict-demand. The predictor's
// response body is relayed verbatim.
func (h *Handler) PredictDemand(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.predict_demand", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	var req domain.PredictDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid product ID required"})
		return
	}

	prediction, err := h.upstream.PredictDemand(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Error().Err(err).Int("product_id", req.ProductID).Msg("Demand prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prediction"})
		return
	}

	c.Data(http.StatusOK, "application/json", prediction)
}
