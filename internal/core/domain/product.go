package domain

import "context"

// Product is a medicine catalog entry. The catalog is read-only from
// this service's perspective; rows are loaded by an external import
// process and keyed by their serial number.
type Product struct {
	SerialNumber     int     `json:"sr_number"`
	ProductName      string  `json:"product_name"`
	GenericName      string  `json:"generic_name"`
	Composition      string  `json:"composition"`
	PacketSize       string  `json:"packet_size"`
	Uses             string  `json:"uses"`
	TransferPrice    float64 `json:"transfer_price"`
	StorageCondition string  `json:"storage_condition"`
}

// ProductRepository defines read access to the medicine catalog.
type ProductRepository interface {
	// ListAll returns every catalog row ordered by serial number.
	ListAll(ctx context.Context) ([]Product, error)

	// BySerial returns the product with the given serial number.
	// Returns (nil, nil) when no product is found.
	BySerial(ctx context.Context, serial int) (*Product, error)
}
