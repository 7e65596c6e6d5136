package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/internal/core/domain"
	"github.com/meditrust/storefront/middleware"
)

// CatalogService exposes read access to the medicine catalog.
type CatalogService struct {
	catalog domain.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog domain.ProductRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListProducts returns every catalog row.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.list_products", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list products: %w", err)
	}

	span.SetAttributes(attribute.Int("catalog.size", len(products)))
	return products, nil
}
