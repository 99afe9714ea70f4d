package inventory

import (
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SourceItemStatus tells whether the quantity at a source is sellable
type SourceItemStatus int

const (
	SourceItemStatusOutOfStock SourceItemStatus = 0
	SourceItemStatusInStock    SourceItemStatus = 1
)

// SourceItem is the quantity of one SKU held at one source.
// (SourceCode, SKU) identifies it.
type SourceItem struct {
	SourceCode string           `validate:"required,max=255"`
	SKU        string           `validate:"required,max=64"`
	Quantity   decimal.Decimal  `validate:"-"`
	Status     SourceItemStatus `validate:"min=0,max=1"`
}

// NewSourceItem creates an empty, out-of-stock source item to be filled in with setters
func NewSourceItem() *SourceItem {
	return &SourceItem{
		Quantity: decimal.Zero,
		Status:   SourceItemStatusOutOfStock,
	}
}

// SetSourceCode sets the source the quantity is held at
func (i *SourceItem) SetSourceCode(code string) *SourceItem {
	i.SourceCode = code
	return i
}

// SetSKU sets the product SKU
func (i *SourceItem) SetSKU(sku string) *SourceItem {
	i.SKU = sku
	return i
}

// SetQuantity sets the quantity
func (i *SourceItem) SetQuantity(qty decimal.Decimal) *SourceItem {
	i.Quantity = qty
	return i
}

// SetStatus sets the stock status
func (i *SourceItem) SetStatus(status SourceItemStatus) *SourceItem {
	i.Status = status
	return i
}

// Validate checks the item can be saved
func (i *SourceItem) Validate() error {
	if err := shared.ValidateStruct(i); err != nil {
		return err
	}
	if i.Quantity.IsNegative() {
		return shared.NewDomainError(shared.ErrValidation.Code, "Validation failed: Quantity cannot be negative")
	}
	return nil
}

// IsInStock returns true if the item is marked sellable
func (i *SourceItem) IsInStock() bool {
	return i.Status == SourceItemStatusInStock
}
