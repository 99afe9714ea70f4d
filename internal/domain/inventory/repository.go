package inventory

import "context"

// SourceRepository defines the interface for inventory source persistence
type SourceRepository interface {
	// FindByCode finds a source by its code
	FindByCode(ctx context.Context, code string) (*Source, error)

	// EnsureExists inserts the source unless one with the same code exists.
	// It reports whether a row was created.
	EnsureExists(ctx context.Context, source *Source) (bool, error)
}

// SourceItemsSaver persists source items in bulk
type SourceItemsSaver interface {
	// Execute validates and upserts items keyed by (source code, SKU).
	// An empty slice is an input error.
	Execute(ctx context.Context, items []*SourceItem) error
}

// SourceItemRepository reads persisted source items
type SourceItemRepository interface {
	// FindBySKU returns every source item of a SKU ordered by source code
	FindBySKU(ctx context.Context, sku string) ([]SourceItem, error)
}
