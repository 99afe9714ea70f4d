package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/erp/storesetup/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// IDBySKU returns the ID of the product with the given SKU
func (r *GormProductRepository) IDBySKU(ctx context.Context, sku string) (uuid.UUID, bool, error) {
	var model models.ProductModel
	err := r.db.WithContext(ctx).Select("id").Where("sku = ?", sku).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return model.ID, true, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var websiteIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.ProductWebsiteModel{}).
		Where("product_id = ?", model.ID).
		Order("website_id").
		Pluck("website_id", &websiteIDs).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(websiteIDs), nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("sku = ?", sku).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save validates the product and creates or updates it together with its website assignments
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if product.IsNew() {
		product.BaseEntity = shared.NewBaseEntity()
	} else {
		product.Touch()
	}
	model := models.ProductModelFromDomain(product)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProductModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}

		var err error
		if count == 0 {
			err = tx.Create(model).Error
		} else {
			err = tx.Select("*").Updates(model).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError(shared.ErrAlreadyExists.Code,
					fmt.Sprintf("Product with SKU %q already exists", product.SKU))
			}
			return err
		}

		if err := tx.Where("product_id = ?", model.ID).Delete(&models.ProductWebsiteModel{}).Error; err != nil {
			return err
		}
		websites := make([]models.ProductWebsiteModel, 0, len(product.WebsiteIDs))
		for _, websiteID := range product.WebsiteIDs {
			websites = append(websites, models.ProductWebsiteModel{ProductID: model.ID, WebsiteID: websiteID})
		}
		return tx.Create(&websites).Error
	})
}

// Count counts all products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
