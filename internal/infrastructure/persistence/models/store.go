package models

import "github.com/erp/storesetup/internal/domain/store"

// WebsiteModel is the persistence model for websites. ID 0 is the admin website.
type WebsiteModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false"`
	Code      string `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(64);not null"`
	IsDefault bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WebsiteModel) TableName() string {
	return "store_websites"
}

// ToDomain converts the persistence model to a domain Website.
func (m *WebsiteModel) ToDomain() *store.Website {
	return &store.Website{ID: m.ID, Code: m.Code, Name: m.Name, IsDefault: m.IsDefault}
}

// StoreModel is the persistence model for store views. ID 0 is the admin store.
type StoreModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false"`
	Code      string `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(255);not null"`
	WebsiteID uint   `gorm:"not null;index"`
	IsActive  bool   `gorm:"not null"`
	IsDefault bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store.
func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		WebsiteID: m.WebsiteID,
		IsActive:  m.IsActive,
		IsDefault: m.IsDefault,
	}
}
