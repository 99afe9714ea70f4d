package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/erp/storesetup/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttributeSetResolver implements AttributeSetResolver using GORM
type GormAttributeSetResolver struct {
	db *gorm.DB
}

// NewGormAttributeSetResolver creates a new GormAttributeSetResolver
func NewGormAttributeSetResolver(db *gorm.DB) *GormAttributeSetResolver {
	return &GormAttributeSetResolver{db: db}
}

// AttributeSetID returns the ID of the named attribute set of an entity type
func (r *GormAttributeSetResolver) AttributeSetID(ctx context.Context, entityType, name string) (uint, error) {
	var model models.AttributeSetModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND name = ?", entityType, name).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("Attribute set %q of entity type %q not found", name, entityType))
		}
		return 0, err
	}
	return model.ID, nil
}

// EnsureAttributeSet creates the named attribute set when missing and returns its ID
func (r *GormAttributeSetResolver) EnsureAttributeSet(ctx context.Context, entityType, name string) (uint, error) {
	model := models.AttributeSetModel{EntityType: entityType, Name: name}
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND name = ?", entityType, name).
		FirstOrCreate(&model).Error; err != nil {
		return 0, err
	}
	return model.ID, nil
}

// Ensure GormAttributeSetResolver implements AttributeSetResolver
var _ catalog.AttributeSetResolver = (*GormAttributeSetResolver)(nil)
