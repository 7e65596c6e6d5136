package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meditrust/storefront/internal/core/domain"
	"github.com/meditrust/storefront/middleware"
)

// CartService maintains per-user cart state consistent with the
// catalog. It never authenticates: every method receives a userID the
// boundary has already resolved from a valid session.
//
// AddItem is additive-merge, UpdateQuantity is absolute-set. The two
// are deliberately separate operations: repeated add-to-cart clicks
// must accumulate, while the quantity controls overwrite.
type CartService struct {
	carts   domain.CartRepository
	catalog domain.ProductRepository
}

// NewCartService creates a new CartService with the given dependencies.
func NewCartService(carts domain.CartRepository, catalog domain.ProductRepository) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
	}
}

// AddItem adds quantity onto the user's entry for the product, creating
// the entry if none exists. The product must exist in the catalog.
// Returns the resulting quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int) (int, error) {
	ctx, span := middleware.StartSpan(ctx, "cart.add_item", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
		attribute.Int("product.id", productID),
		attribute.Int("cart.delta", quantity),
	))
	defer span.End()

	if quantity < 1 {
		return 0, fmt.Errorf("add product %d with quantity %d: %w", productID, quantity, ErrInvalidQuantity)
	}

	product, err := s.catalog.BySerial(ctx, productID)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("lookup product %d: %w", productID, err)
	}
	if product == nil {
		span.SetAttributes(attribute.Bool("product.found", false))
		return 0, fmt.Errorf("add product %d: %w", productID, ErrProductNotFound)
	}

	newQuantity, err := s.carts.UpsertAdd(ctx, userID, productID, quantity)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("upsert cart entry: %w", err)
	}

	span.SetAttributes(attribute.Int("cart.quantity", newQuantity))
	return newQuantity, nil
}

// UpdateQuantity overwrites the entry's quantity. The entry must
// already exist; a prior AddItem validated the product, so the catalog
// is not consulted again.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, quantity int) error {
	ctx, span := middleware.StartSpan(ctx, "cart.update_quantity", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
		attribute.Int("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	if quantity < 1 {
		return fmt.Errorf("set product %d to quantity %d: %w", productID, quantity, ErrInvalidQuantity)
	}

	updated, err := s.carts.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("update cart entry: %w", err)
	}
	if !updated {
		span.SetAttributes(attribute.Bool("entry.found", false))
		return fmt.Errorf("update product %d: %w", productID, ErrEntryNotFound)
	}

	return nil
}

// RemoveItem deletes the entry for the pair. Removing an absent entry
// reports ErrEntryNotFound; callers treat that as non-fatal.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int) error {
	ctx, span := middleware.StartSpan(ctx, "cart.remove_item", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
		attribute.Int("product.id", productID),
	))
	defer span.End()

	deleted, err := s.carts.Delete(ctx, userID, productID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete cart entry: %w", err)
	}
	if !deleted {
		span.SetAttributes(attribute.Bool("entry.found", false))
		return fmt.Errorf("remove product %d: %w", productID, ErrEntryNotFound)
	}

	return nil
}

// ListItems returns the user's cart joined with live catalog data,
// oldest entry first. Empty carts yield an empty slice, not nil.
func (s *CartService) ListItems(ctx context.Context, userID int) ([]domain.CartLine, error) {
	ctx, span := middleware.StartSpan(ctx, "cart.list_items", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
	))
	defer span.End()

	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list cart entries: %w", err)
	}

	span.SetAttributes(attribute.Int("cart.size", len(lines)))
	return lines, nil
}

// CartTotal is the sum of quantity times current transfer price over
// the given lines. It is always computed at read time so price changes
// in the catalog show up immediately; totals are never stored.
func CartTotal(lines []domain.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
