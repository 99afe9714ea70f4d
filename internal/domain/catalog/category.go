package catalog

import (
	"fmt"
	"strconv"

	"github.com/erp/storesetup/internal/domain/shared"
)

// MaxCategoryDepth is the maximum depth of category hierarchy
const MaxCategoryDepth = 10

// Well-known category IDs installed with the catalog
const (
	RootCategoryID    uint = 1
	DefaultCategoryID uint = 2
)

// Category represents a node in the category tree.
// Path is the materialized chain of IDs from the root, e.g. "1/2/7".
type Category struct {
	ID       uint
	ParentID uint
	Name     string
	Path     string
	Level    int
	Position int
	IsActive bool
}

// NewRootCategory creates the tree root; it has no parent and level 0
func NewRootCategory(id uint, name string) (*Category, error) {
	if id == 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID must be positive")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		ID:       id,
		Name:     name,
		Path:     strconv.FormatUint(uint64(id), 10),
		Level:    0,
		IsActive: true,
	}, nil
}

// NewChildCategory creates a category under parent
func NewChildCategory(id uint, name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}
	if id == 0 || id == parent.ID {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID must be positive and differ from its parent")
	}
	if parent.Level >= MaxCategoryDepth-1 {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		ID:       id,
		ParentID: parent.ID,
		Name:     name,
		Path:     parent.Path + "/" + strconv.FormatUint(uint64(id), 10),
		Level:    parent.Level + 1,
		IsActive: true,
	}, nil
}

// IsRoot returns true for the tree root
func (c *Category) IsRoot() bool {
	return c.ParentID == 0
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 255 characters")
	}
	return nil
}
