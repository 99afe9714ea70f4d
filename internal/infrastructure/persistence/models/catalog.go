package models

import (
	"time"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	SKU                  string                `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_catalog_products_sku"`
	TypeID               catalog.ProductType   `gorm:"type:varchar(32);not null"`
	Name                 string                `gorm:"type:varchar(255);not null"`
	URLKey               string                `gorm:"column:url_key;type:varchar(255);not null;index"`
	Price                decimal.Decimal       `gorm:"type:decimal(20,6);not null"`
	Visibility           catalog.Visibility    `gorm:"not null"`
	Status               catalog.ProductStatus `gorm:"not null"`
	AttributeSetID       uint                  `gorm:"not null;index"`
	UseConfigManageStock bool                  `gorm:"not null"`
	IsQtyDecimal         bool                  `gorm:"not null"`
	IsInStock            bool                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "catalog_products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Website IDs live in their own table and are filled in by the repository.
func (m *ProductModel) ToDomain(websiteIDs []uint) *catalog.Product {
	return &catalog.Product{
		BaseEntity:     m.BaseModel.entity(),
		SKU:            m.SKU,
		TypeID:         m.TypeID,
		Name:           m.Name,
		URLKey:         m.URLKey,
		Price:          m.Price,
		Visibility:     m.Visibility,
		Status:         m.Status,
		AttributeSetID: m.AttributeSetID,
		WebsiteIDs:     websiteIDs,
		Stock: catalog.StockData{
			UseConfigManageStock: m.UseConfigManageStock,
			IsQtyDecimal:         m.IsQtyDecimal,
			IsInStock:            m.IsInStock,
		},
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.BaseModel = newBaseModel(p.BaseEntity)
	m.SKU = p.SKU
	m.TypeID = p.TypeID
	m.Name = p.Name
	m.URLKey = p.URLKey
	m.Price = p.Price
	m.Visibility = p.Visibility
	m.Status = p.Status
	m.AttributeSetID = p.AttributeSetID
	m.UseConfigManageStock = p.Stock.UseConfigManageStock
	m.IsQtyDecimal = p.Stock.IsQtyDecimal
	m.IsInStock = p.Stock.IsInStock
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductWebsiteModel assigns a product to a website
type ProductWebsiteModel struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	WebsiteID uint      `gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name for GORM
func (ProductWebsiteModel) TableName() string {
	return "catalog_product_websites"
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false"`
	ParentID  uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Path      string    `gorm:"type:varchar(255);not null;index"`
	Level     int       `gorm:"not null"`
	Position  int       `gorm:"not null"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "catalog_categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		ID:       m.ID,
		ParentID: m.ParentID,
		Name:     m.Name,
		Path:     m.Path,
		Level:    m.Level,
		Position: m.Position,
		IsActive: m.IsActive,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	return &CategoryModel{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		Path:     c.Path,
		Level:    c.Level,
		Position: c.Position,
		IsActive: c.IsActive,
	}
}

// CategoryProductModel links a product to a category
type CategoryProductModel struct {
	CategoryID uint      `gorm:"primaryKey;autoIncrement:false"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryProductModel) TableName() string {
	return "catalog_category_products"
}

// AttributeSetModel is the persistence model for attribute sets
type AttributeSetModel struct {
	ID         uint   `gorm:"primaryKey"`
	EntityType string `gorm:"type:varchar(64);not null;uniqueIndex:idx_attribute_sets_entity_name,priority:1"`
	Name       string `gorm:"type:varchar(255);not null;uniqueIndex:idx_attribute_sets_entity_name,priority:2"`
	SortOrder  int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttributeSetModel) TableName() string {
	return "eav_attribute_sets"
}

// ToDomain converts the persistence model to a domain AttributeSet.
func (m *AttributeSetModel) ToDomain() *catalog.AttributeSet {
	return &catalog.AttributeSet{
		ID:         m.ID,
		EntityType: m.EntityType,
		Name:       m.Name,
		SortOrder:  m.SortOrder,
	}
}
