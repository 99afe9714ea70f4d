package seed

import (
	"context"
	"fmt"

	appsetup "github.com/erp/storesetup/internal/application/setup"
	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/domain/store"
	"github.com/erp/storesetup/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PatchDemoProduct is the history name of the demo product patch
const PatchDemoProduct = "catalog.demo_product"

// Demo product values
const (
	DemoProductSKU      = "demo-product"
	DemoProductName     = "Demo Product"
	DemoProductURLKey   = "demo-product"
	DemoProductPrice    = "19.99"
	DemoProductQuantity = 50
)

// DemoCategoryIDs are the categories the demo product is linked to
var DemoCategoryIDs = []uint{catalog.DefaultCategoryID}

// DemoProductPatch creates the demo product, gives it stock at the default
// source and links it to the default category. It does nothing when a product
// with the demo SKU already exists.
//
// Writes are not compensated: if stock or category assignment fails after the
// product is saved, the product stays and a rerun skips it.
type DemoProductPatch struct {
	state         *appsetup.State
	products      catalog.ProductRepository
	attributeSets catalog.AttributeSetResolver
	stores        store.Manager
	sourceItems   inventory.SourceItemsSaver
	categoryLinks catalog.CategoryLinkManagement
}

// NewDemoProductPatch creates the patch
func NewDemoProductPatch(
	state *appsetup.State,
	products catalog.ProductRepository,
	attributeSets catalog.AttributeSetResolver,
	stores store.Manager,
	sourceItems inventory.SourceItemsSaver,
	categoryLinks catalog.CategoryLinkManagement,
) *DemoProductPatch {
	return &DemoProductPatch{
		state:         state,
		products:      products,
		attributeSets: attributeSets,
		stores:        stores,
		sourceItems:   sourceItems,
		categoryLinks: categoryLinks,
	}
}

func (p *DemoProductPatch) Name() string { return PatchDemoProduct }

// Dependencies lists the reference data the product points at
func (p *DemoProductPatch) Dependencies() []string {
	return []string{PatchDefaultWebsites, PatchDefaultAttributeSet, PatchDefaultCategories, PatchDefaultSource}
}

func (p *DemoProductPatch) Aliases() []string { return nil }

// Apply runs the seeding in the adminhtml area
func (p *DemoProductPatch) Apply(ctx context.Context) error {
	return p.state.EmulateAreaCode(ctx, setup.AreaAdminhtml, p.seed)
}

func (p *DemoProductPatch) seed(ctx context.Context) error {
	log := logger.L(ctx).With(zap.String("sku", DemoProductSKU))

	_, exists, err := p.products.IDBySKU(ctx, DemoProductSKU)
	if err != nil {
		return fmt.Errorf("look up product %s: %w", DemoProductSKU, err)
	}
	if exists {
		log.Info("Demo product already exists, skipping")
		return nil
	}

	attributeSetID, err := p.attributeSets.AttributeSetID(ctx, catalog.EntityTypeProduct, catalog.DefaultAttributeSetName)
	if err != nil {
		return fmt.Errorf("resolve attribute set %s: %w", catalog.DefaultAttributeSetName, err)
	}

	current, err := p.stores.CurrentStore(ctx)
	if err != nil {
		return fmt.Errorf("resolve current store: %w", err)
	}

	product, err := catalog.NewProduct(DemoProductSKU)
	if err != nil {
		return err
	}
	product.SetTypeID(catalog.ProductTypeSimple).
		SetAttributeSetID(attributeSetID).
		SetWebsiteIDs([]uint{current.WebsiteID}).
		SetName(DemoProductName).
		SetURLKey(DemoProductURLKey).
		SetPrice(decimal.RequireFromString(DemoProductPrice)).
		SetVisibility(catalog.VisibilityBoth).
		SetStatus(catalog.ProductStatusEnabled).
		SetStockData(catalog.StockData{
			UseConfigManageStock: true,
			IsQtyDecimal:         false,
			IsInStock:            true,
		})

	if err := p.products.Save(ctx, product); err != nil {
		return fmt.Errorf("save product %s: %w", DemoProductSKU, err)
	}
	log.Info("Demo product saved", zap.String("product_id", product.ID.String()))

	item := inventory.NewSourceItem().
		SetSourceCode(inventory.DefaultSourceCode).
		SetSKU(DemoProductSKU).
		SetQuantity(decimal.NewFromInt(DemoProductQuantity)).
		SetStatus(inventory.SourceItemStatusInStock)
	items := []*inventory.SourceItem{item}
	if err := p.sourceItems.Execute(ctx, items); err != nil {
		return fmt.Errorf("save source items for %s: %w", DemoProductSKU, err)
	}

	if err := p.categoryLinks.AssignProductToCategories(ctx, DemoProductSKU, DemoCategoryIDs); err != nil {
		return fmt.Errorf("assign %s to categories: %w", DemoProductSKU, err)
	}

	log.Info("Demo product seeded",
		zap.Int("quantity", DemoProductQuantity),
		zap.String("source_code", inventory.DefaultSourceCode))
	return nil
}
