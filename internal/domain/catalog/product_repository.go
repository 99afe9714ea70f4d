package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// IDBySKU returns the ID of the product with the given SKU.
	// The boolean is false when no such product exists; that is not an error.
	IDBySKU(ctx context.Context, sku string) (uuid.UUID, bool, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// Save validates and creates or updates a product together with its website assignments
	Save(ctx context.Context, product *Product) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}
