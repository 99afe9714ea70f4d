// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by UUID-keyed tables
// - catalog.go: products, product websites, categories, category links, attribute sets
// - inventory.go: inventory sources and source items
// - store.go: websites and store views
// - setup.go: the applied data patch history
package models

// All returns every persistence model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&WebsiteModel{},
		&StoreModel{},
		&AttributeSetModel{},
		&ProductModel{},
		&ProductWebsiteModel{},
		&CategoryModel{},
		&CategoryProductModel{},
		&SourceModel{},
		&SourceItemModel{},
		&PatchListModel{},
	}
}
