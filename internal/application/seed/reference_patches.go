package seed

import (
	"context"
	"fmt"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/erp/storesetup/internal/domain/store"
	"github.com/erp/storesetup/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Reference patch names
const (
	PatchDefaultWebsites     = "store.default_websites"
	PatchDefaultAttributeSet = "catalog.default_attribute_set"
	PatchDefaultCategories   = "catalog.default_categories"
	PatchDefaultSource       = "inventory.default_source"
)

// DefaultWebsitesPatch installs the admin and base websites and their store views
type DefaultWebsitesPatch struct {
	repo store.Repository
}

// NewDefaultWebsitesPatch creates the patch
func NewDefaultWebsitesPatch(repo store.Repository) *DefaultWebsitesPatch {
	return &DefaultWebsitesPatch{repo: repo}
}

func (p *DefaultWebsitesPatch) Name() string           { return PatchDefaultWebsites }
func (p *DefaultWebsitesPatch) Dependencies() []string { return nil }
func (p *DefaultWebsitesPatch) Aliases() []string      { return nil }

// Apply inserts the rows that are missing
func (p *DefaultWebsitesPatch) Apply(ctx context.Context) error {
	websites := []*store.Website{
		{ID: store.AdminWebsiteID, Code: "admin", Name: "Admin"},
		{ID: store.DefaultWebsiteID, Code: "base", Name: "Main Website", IsDefault: true},
	}
	for _, w := range websites {
		created, err := p.repo.EnsureWebsite(ctx, w)
		if err != nil {
			return fmt.Errorf("ensure website %s: %w", w.Code, err)
		}
		if created {
			logger.L(ctx).Info("Website created", zap.String("code", w.Code))
		}
	}

	stores := []*store.Store{
		{ID: store.AdminStoreID, Code: "admin", Name: "Admin", WebsiteID: store.AdminWebsiteID, IsActive: true},
		{ID: store.DefaultStoreID, Code: "default", Name: "Default Store View", WebsiteID: store.DefaultWebsiteID, IsActive: true, IsDefault: true},
	}
	for _, s := range stores {
		created, err := p.repo.EnsureStore(ctx, s)
		if err != nil {
			return fmt.Errorf("ensure store %s: %w", s.Code, err)
		}
		if created {
			logger.L(ctx).Info("Store view created", zap.String("code", s.Code))
		}
	}
	return nil
}

// DefaultAttributeSetPatch installs the Default attribute set for products
type DefaultAttributeSetPatch struct {
	resolver catalog.AttributeSetResolver
}

// NewDefaultAttributeSetPatch creates the patch
func NewDefaultAttributeSetPatch(resolver catalog.AttributeSetResolver) *DefaultAttributeSetPatch {
	return &DefaultAttributeSetPatch{resolver: resolver}
}

func (p *DefaultAttributeSetPatch) Name() string           { return PatchDefaultAttributeSet }
func (p *DefaultAttributeSetPatch) Dependencies() []string { return nil }
func (p *DefaultAttributeSetPatch) Aliases() []string      { return nil }

func (p *DefaultAttributeSetPatch) Apply(ctx context.Context) error {
	id, err := p.resolver.EnsureAttributeSet(ctx, catalog.EntityTypeProduct, catalog.DefaultAttributeSetName)
	if err != nil {
		return fmt.Errorf("ensure attribute set %s/%s: %w", catalog.EntityTypeProduct, catalog.DefaultAttributeSetName, err)
	}
	logger.L(ctx).Debug("Attribute set ready", zap.Uint("attribute_set_id", id))
	return nil
}

// DefaultCategoriesPatch installs the root catalog and the default category under it
type DefaultCategoriesPatch struct {
	repo catalog.CategoryRepository
}

// NewDefaultCategoriesPatch creates the patch
func NewDefaultCategoriesPatch(repo catalog.CategoryRepository) *DefaultCategoriesPatch {
	return &DefaultCategoriesPatch{repo: repo}
}

func (p *DefaultCategoriesPatch) Name() string           { return PatchDefaultCategories }
func (p *DefaultCategoriesPatch) Dependencies() []string { return nil }
func (p *DefaultCategoriesPatch) Aliases() []string      { return nil }

func (p *DefaultCategoriesPatch) Apply(ctx context.Context) error {
	root, err := catalog.NewRootCategory(catalog.RootCategoryID, "Root Catalog")
	if err != nil {
		return err
	}
	def, err := catalog.NewChildCategory(catalog.DefaultCategoryID, "Default Category", root)
	if err != nil {
		return err
	}

	for _, c := range []*catalog.Category{root, def} {
		created, err := p.repo.EnsureExists(ctx, c)
		if err != nil {
			return fmt.Errorf("ensure category %d: %w", c.ID, err)
		}
		if created {
			logger.L(ctx).Info("Category created", zap.Uint("category_id", c.ID), zap.String("path", c.Path))
		}
	}
	return nil
}

// DefaultSourcePatch installs the default inventory source
type DefaultSourcePatch struct {
	repo inventory.SourceRepository
}

// NewDefaultSourcePatch creates the patch
func NewDefaultSourcePatch(repo inventory.SourceRepository) *DefaultSourcePatch {
	return &DefaultSourcePatch{repo: repo}
}

func (p *DefaultSourcePatch) Name() string           { return PatchDefaultSource }
func (p *DefaultSourcePatch) Dependencies() []string { return nil }
func (p *DefaultSourcePatch) Aliases() []string      { return nil }

func (p *DefaultSourcePatch) Apply(ctx context.Context) error {
	source, err := inventory.NewSource(inventory.DefaultSourceCode, "Default Source")
	if err != nil {
		return err
	}
	created, err := p.repo.EnsureExists(ctx, source)
	if err != nil {
		return fmt.Errorf("ensure source %s: %w", source.Code, err)
	}
	if created {
		logger.L(ctx).Info("Inventory source created", zap.String("source_code", source.Code))
	}
	return nil
}
