package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meditrust/storefront/internal/core/domain"
)

// PgxProductRepository implements domain.ProductRepository over the
// medicines table using pgxpool.
type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new PgxProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{pool: pool}
}

const productColumns = `sr_number, product_name, generic_name, composition,
	packet_size, uses, transfer_price, storage_condition`

// ListAll returns every catalog row ordered by serial number.
func (r *PgxProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM medicines ORDER BY sr_number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.SerialNumber, &p.ProductName, &p.GenericName, &p.Composition,
			&p.PacketSize, &p.Uses, &p.TransferPrice, &p.StorageCondition,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// BySerial returns the product with the given serial number.
// Returns (nil, nil) when no product is found.
func (r *PgxProductRepository) BySerial(ctx context.Context, serial int) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM medicines WHERE sr_number = $1`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, serial).Scan(
		&p.SerialNumber, &p.ProductName, &p.GenericName, &p.Composition,
		&p.PacketSize, &p.Uses, &p.TransferPrice, &p.StorageCondition,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}
