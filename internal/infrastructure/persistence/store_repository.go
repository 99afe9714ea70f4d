package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/erp/storesetup/internal/domain/store"
	"github.com/erp/storesetup/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements store.Manager and store.Repository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// CurrentStore returns the default store view, never the admin store
func (r *GormStoreRepository) CurrentStore(ctx context.Context) (*store.Store, error) {
	var model models.StoreModel
	err := r.db.WithContext(ctx).
		Where("is_default = ? AND id <> ?", true, store.AdminStoreID).
		Order("id").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Default store view is not installed")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// StoreByCode finds a store view by code
func (r *GormStoreRepository) StoreByCode(ctx context.Context, code string) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, fmt.Sprintf("Store %q not found", code))
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// EnsureWebsite inserts the website unless its ID or code is already taken
func (r *GormStoreRepository) EnsureWebsite(ctx context.Context, website *store.Website) (bool, error) {
	model := models.WebsiteModel{
		ID:        website.ID,
		Code:      website.Code,
		Name:      website.Name,
		IsDefault: website.IsDefault,
	}
	return r.insertIgnore(ctx, &model)
}

// EnsureStore inserts the store view unless its ID or code is already taken
func (r *GormStoreRepository) EnsureStore(ctx context.Context, s *store.Store) (bool, error) {
	model := models.StoreModel{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		WebsiteID: s.WebsiteID,
		IsActive:  s.IsActive,
		IsDefault: s.IsDefault,
	}
	return r.insertIgnore(ctx, &model)
}

func (r *GormStoreRepository) insertIgnore(ctx context.Context, model any) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormStoreRepository implements the store interfaces
var (
	_ store.Manager    = (*GormStoreRepository)(nil)
	_ store.Repository = (*GormStoreRepository)(nil)
)
