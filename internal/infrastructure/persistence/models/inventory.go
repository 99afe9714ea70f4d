package models

import (
	"time"

	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// SourceModel is the persistence model for inventory sources
type SourceModel struct {
	Code      string    `gorm:"type:varchar(255);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Enabled   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SourceModel) TableName() string {
	return "inventory_sources"
}

// ToDomain converts the persistence model to a domain Source.
func (m *SourceModel) ToDomain() *inventory.Source {
	return &inventory.Source{
		Code:    m.Code,
		Name:    m.Name,
		Enabled: m.Enabled,
	}
}

// SourceItemModel is the persistence model for source items, unique on (source_code, sku)
type SourceItemModel struct {
	ID         uint                       `gorm:"primaryKey"`
	SourceCode string                     `gorm:"type:varchar(255);not null;uniqueIndex:idx_source_items_source_sku,priority:1"`
	SKU        string                     `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_source_items_source_sku,priority:2;index"`
	Quantity   decimal.Decimal            `gorm:"type:decimal(12,4);not null"`
	Status     inventory.SourceItemStatus `gorm:"not null"`
	UpdatedAt  time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SourceItemModel) TableName() string {
	return "inventory_source_items"
}

// ToDomain converts the persistence model to a domain SourceItem.
func (m *SourceItemModel) ToDomain() inventory.SourceItem {
	return inventory.SourceItem{
		SourceCode: m.SourceCode,
		SKU:        m.SKU,
		Quantity:   m.Quantity,
		Status:     m.Status,
	}
}

// SourceItemModelFromDomain creates a new persistence model from a domain SourceItem.
func SourceItemModelFromDomain(i *inventory.SourceItem) *SourceItemModel {
	return &SourceItemModel{
		SourceCode: i.SourceCode,
		SKU:        i.SKU,
		Quantity:   i.Quantity,
		Status:     i.Status,
	}
}
