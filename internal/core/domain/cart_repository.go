package domain

import (
	"context"
	"time"
)

// CartLine is a cart entry joined with its live catalog row, as
// returned by list queries. Product fields are flattened into the JSON
// alongside the entry's own columns.
type CartLine struct {
	EntryID  int       `json:"id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
	Product
}

// Subtotal is the line's contribution to the cart total at the current
// catalog price.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.TransferPrice
}

// CartRepository defines the data-access contract for cart entries.
// Each user holds at most one entry per product; the merge on add must
// happen inside a single statement so that concurrent adds for the same
// (user, product) pair never lose an increment.
type CartRepository interface {
	// UpsertAdd inserts a new entry with the given quantity, or adds the
	// quantity onto the existing entry for the pair. Returns the
	// resulting quantity.
	UpsertAdd(ctx context.Context, userID, productID, quantity int) (int, error)

	// SetQuantity overwrites the entry's quantity. Returns false when no
	// entry exists for the pair.
	SetQuantity(ctx context.Context, userID, productID, quantity int) (bool, error)

	// Delete removes the entry for the pair. Returns false when no entry
	// was deleted.
	Delete(ctx context.Context, userID, productID int) (bool, error)

	// ListByUser returns the user's cart entries joined with their
	// catalog rows, oldest first.
	ListByUser(ctx context.Context, userID int) ([]CartLine, error)
}
