package models

import (
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
)

// PatchListModel is one applied data patch
type PatchListModel struct {
	ID        uint      `gorm:"primaryKey"`
	PatchName string    `gorm:"type:varchar(1024);not null;uniqueIndex"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PatchListModel) TableName() string {
	return "patch_list"
}

// ToDomain converts the persistence model to a domain AppliedPatch.
func (m *PatchListModel) ToDomain() setup.AppliedPatch {
	return setup.AppliedPatch{Name: m.PatchName, AppliedAt: m.AppliedAt}
}
