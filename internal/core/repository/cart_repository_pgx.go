package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meditrust/storefront/internal/core/domain"
)

// PgxCartRepository implements domain.CartRepository using pgxpool.
//
// The merge on add runs as one upsert statement so two concurrent adds
// for the same (user, product) pair serialize on the row inside the
// database instead of racing through separate read and write round
// trips.
type PgxCartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository creates a new PgxCartRepository.
func NewCartRepository(pool *pgxpool.Pool) *PgxCartRepository {
	return &PgxCartRepository{pool: pool}
}

// UpsertAdd inserts a new entry or adds the quantity onto the existing
// one, returning the resulting quantity.
func (r *PgxCartRepository) UpsertAdd(ctx context.Context, userID, productID, quantity int) (int, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING quantity
	`

	var newQuantity int
	err := r.pool.QueryRow(ctx, query, userID, productID, quantity).Scan(&newQuantity)
	if err != nil {
		return 0, err
	}

	return newQuantity, nil
}

// SetQuantity overwrites the entry's quantity. Returns false when no
// entry exists for the pair.
func (r *PgxCartRepository) SetQuantity(ctx context.Context, userID, productID, quantity int) (bool, error) {
	query := `UPDATE cart_items SET quantity = $1 WHERE user_id = $2 AND product_id = $3`

	tag, err := r.pool.Exec(ctx, query, quantity, userID, productID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes the entry for the pair. Returns false when no entry
// was deleted.
func (r *PgxCartRepository) Delete(ctx context.Context, userID, productID int) (bool, error) {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// ListByUser returns the user's cart entries joined with their catalog
// rows, oldest first.
func (r *PgxCartRepository) ListByUser(ctx context.Context, userID int) ([]domain.CartLine, error) {
	query := `
		SELECT c.id, c.quantity, c.added_at,
		       m.sr_number, m.product_name, m.generic_name, m.composition,
		       m.packet_size, m.uses, m.transfer_price, m.storage_condition
		FROM cart_items c
		JOIN medicines m ON c.product_id = m.sr_number
		WHERE c.user_id = $1
		ORDER BY c.added_at, c.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(
			&l.EntryID, &l.Quantity, &l.AddedAt,
			&l.SerialNumber, &l.ProductName, &l.GenericName, &l.Composition,
			&l.PacketSize, &l.Uses, &l.TransferPrice, &l.StorageCondition,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}
