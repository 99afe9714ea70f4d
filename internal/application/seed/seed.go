// Package seed holds the data patches run by setup upgrade: the reference
// data every storefront needs and the demo catalog product.
package seed

import (
	appsetup "github.com/erp/storesetup/internal/application/setup"
	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/domain/store"
)

// Services are the platform services the patches write through
type Services struct {
	Stores        store.Repository
	StoreManager  store.Manager
	AttributeSets catalog.AttributeSetResolver
	Categories    catalog.CategoryRepository
	CategoryLinks catalog.CategoryLinkManagement
	Products      catalog.ProductRepository
	Sources       inventory.SourceRepository
	SourceItems   inventory.SourceItemsSaver
}

// Patches returns every seed patch in registration order
func Patches(state *appsetup.State, svc Services) []setup.DataPatch {
	return []setup.DataPatch{
		NewDefaultWebsitesPatch(svc.Stores),
		NewDefaultAttributeSetPatch(svc.AttributeSets),
		NewDefaultCategoriesPatch(svc.Categories),
		NewDefaultSourcePatch(svc.Sources),
		NewDemoProductPatch(state, svc.Products, svc.AttributeSets, svc.StoreManager, svc.SourceItems, svc.CategoryLinks),
	}
}

// Register adds every seed patch to the registry
func Register(registry *appsetup.Registry, state *appsetup.State, svc Services) error {
	return registry.Register(Patches(state, svc)...)
}
