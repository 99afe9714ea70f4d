package catalog

import "context"

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByIDs finds all categories among ids; missing IDs are simply absent from the result
	FindByIDs(ctx context.Context, ids []uint) ([]Category, error)

	// EnsureExists inserts the category unless a category with the same ID already exists.
	// It reports whether a row was created.
	EnsureExists(ctx context.Context, category *Category) (bool, error)
}
