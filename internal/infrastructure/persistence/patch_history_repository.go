package persistence

import (
	"context"
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPatchHistory implements PatchHistory on the patch_list table
type GormPatchHistory struct {
	db *gorm.DB
}

// NewGormPatchHistory creates a new GormPatchHistory
func NewGormPatchHistory(db *gorm.DB) *GormPatchHistory {
	return &GormPatchHistory{db: db}
}

// IsApplied reports whether the patch name is recorded
func (h *GormPatchHistory) IsApplied(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := h.db.WithContext(ctx).
		Model(&models.PatchListModel{}).
		Where("patch_name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkApplied records the patch name; an existing record is left untouched
func (h *GormPatchHistory) MarkApplied(ctx context.Context, name string) error {
	model := models.PatchListModel{PatchName: name, AppliedAt: time.Now()}
	return h.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "patch_name"}}, DoNothing: true}).
		Create(&model).Error
}

// List returns every recorded patch in application order
func (h *GormPatchHistory) List(ctx context.Context) ([]setup.AppliedPatch, error) {
	var rows []models.PatchListModel
	if err := h.db.WithContext(ctx).Order("applied_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	patches := make([]setup.AppliedPatch, 0, len(rows))
	for i := range rows {
		patches = append(patches, rows[i].ToDomain())
	}
	return patches, nil
}

// Ensure GormPatchHistory implements PatchHistory
var _ setup.PatchHistory = (*GormPatchHistory)(nil)
