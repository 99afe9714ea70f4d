package catalog

import (
	"strings"

	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntityTypeProduct is the entity type code attribute sets are grouped under for products.
const EntityTypeProduct = "catalog_product"

// ProductType identifies how a product is composed and sold
type ProductType string

const (
	ProductTypeSimple       ProductType = "simple"
	ProductTypeVirtual      ProductType = "virtual"
	ProductTypeConfigurable ProductType = "configurable"
	ProductTypeBundle       ProductType = "bundle"
	ProductTypeGrouped      ProductType = "grouped"
)

// Visibility controls where a product is listed on the storefront
type Visibility int

const (
	VisibilityNotVisible Visibility = 1
	VisibilityInCatalog  Visibility = 2
	VisibilityInSearch   Visibility = 3
	VisibilityBoth       Visibility = 4
)

// ProductStatus represents whether the product can be sold
type ProductStatus int

const (
	ProductStatusEnabled  ProductStatus = 1
	ProductStatusDisabled ProductStatus = 2
)

// StockData carries the legacy stock flags saved alongside a product
type StockData struct {
	UseConfigManageStock bool
	IsQtyDecimal         bool
	IsInStock            bool
}

// Product represents a catalog product identified by its SKU.
// It is the aggregate root for product persistence.
type Product struct {
	shared.BaseEntity
	SKU            string          `validate:"required,max=64,sku"`
	TypeID         ProductType     `validate:"required,oneof=simple virtual configurable bundle grouped"`
	Name           string          `validate:"required,max=255"`
	URLKey         string          `validate:"required,max=255,urlkey"`
	Price          decimal.Decimal `validate:"-"`
	Visibility     Visibility      `validate:"min=1,max=4"`
	Status         ProductStatus   `validate:"min=1,max=2"`
	AttributeSetID uint            `validate:"required"`
	WebsiteIDs     []uint          `validate:"required,min=1"`
	Stock          StockData       `validate:"-"`
}

// NewProduct creates a new product with the given SKU.
// The product starts as a disabled simple product, not visible individually,
// and must be filled in with setters before it is saved.
func NewProduct(sku string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        sku,
		TypeID:     ProductTypeSimple,
		Price:      decimal.Zero,
		Visibility: VisibilityNotVisible,
		Status:     ProductStatusDisabled,
		WebsiteIDs: []uint{},
	}, nil
}

// SetTypeID sets the product type
func (p *Product) SetTypeID(typeID ProductType) *Product {
	p.TypeID = typeID
	return p
}

// SetName sets the display name
func (p *Product) SetName(name string) *Product {
	p.Name = name
	return p
}

// SetURLKey sets the URL key used to build the product page path
func (p *Product) SetURLKey(urlKey string) *Product {
	p.URLKey = strings.ToLower(strings.TrimSpace(urlKey))
	return p
}

// SetPrice sets the base price
func (p *Product) SetPrice(price decimal.Decimal) *Product {
	p.Price = price
	return p
}

// SetVisibility sets the storefront visibility
func (p *Product) SetVisibility(v Visibility) *Product {
	p.Visibility = v
	return p
}

// SetStatus sets the enabled/disabled status
func (p *Product) SetStatus(s ProductStatus) *Product {
	p.Status = s
	return p
}

// SetAttributeSetID sets the attribute set the product belongs to
func (p *Product) SetAttributeSetID(id uint) *Product {
	p.AttributeSetID = id
	return p
}

// SetWebsiteIDs replaces the websites the product is assigned to
func (p *Product) SetWebsiteIDs(ids []uint) *Product {
	p.WebsiteIDs = append([]uint(nil), ids...)
	return p
}

// SetStockData sets the stock flags
func (p *Product) SetStockData(stock StockData) *Product {
	p.Stock = stock
	return p
}

// Validate checks the product is complete enough to be persisted
func (p *Product) Validate() error {
	if err := shared.ValidateStruct(p); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError(shared.ErrValidation.Code, "Validation failed: Price cannot be negative")
	}
	return nil
}

// IsEnabled returns true if the product is enabled
func (p *Product) IsEnabled() bool {
	return p.Status == ProductStatusEnabled
}

// IsVisibleInCatalog returns true if the product is listed in category pages
func (p *Product) IsVisibleInCatalog() bool {
	return p.Visibility == VisibilityInCatalog || p.Visibility == VisibilityBoth
}

// IsVisibleInSearch returns true if the product is listed in search results
func (p *Product) IsVisibleInSearch() bool {
	return p.Visibility == VisibilityInSearch || p.Visibility == VisibilityBoth
}
