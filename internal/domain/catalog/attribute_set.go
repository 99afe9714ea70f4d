package catalog

import "context"

// DefaultAttributeSetName is the attribute set every entity type is installed with
const DefaultAttributeSetName = "Default"

// AttributeSet is a named grouping of attributes for one entity type
type AttributeSet struct {
	ID         uint
	EntityType string
	Name       string
	SortOrder  int
}

// AttributeSetResolver resolves attribute set IDs by entity type and name
type AttributeSetResolver interface {
	// AttributeSetID returns the ID of the named set, or shared.ErrNotFound
	AttributeSetID(ctx context.Context, entityType, name string) (uint, error)

	// EnsureAttributeSet creates the named set when missing and returns its ID
	EnsureAttributeSet(ctx context.Context, entityType, name string) (uint, error)
}
