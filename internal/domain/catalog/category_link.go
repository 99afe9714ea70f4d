package catalog

import (
	"context"
	"sort"
)

// CategoryLink associates a product SKU with a category
type CategoryLink struct {
	SKU        string
	CategoryID uint
	Position   int
}

// CategoryLinkManagement assigns products to categories
type CategoryLinkManagement interface {
	// AssignProductToCategories replaces the product's category assignment with
	// exactly categoryIDs. The product and every category must exist.
	AssignProductToCategories(ctx context.Context, sku string, categoryIDs []uint) error

	// LinksBySKU returns the current links of a product ordered by category ID
	LinksBySKU(ctx context.Context, sku string) ([]CategoryLink, error)
}

// NormalizeCategoryIDs drops zero and duplicate IDs and returns the rest sorted
func NormalizeCategoryIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
