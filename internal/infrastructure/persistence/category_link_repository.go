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

// GormCategoryLinkManagement implements CategoryLinkManagement using GORM
type GormCategoryLinkManagement struct {
	db *gorm.DB
}

// NewGormCategoryLinkManagement creates a new GormCategoryLinkManagement
func NewGormCategoryLinkManagement(db *gorm.DB) *GormCategoryLinkManagement {
	return &GormCategoryLinkManagement{db: db}
}

// AssignProductToCategories replaces the category links of the product in one transaction
func (m *GormCategoryLinkManagement) AssignProductToCategories(ctx context.Context, sku string, categoryIDs []uint) error {
	ids := catalog.NormalizeCategoryIDs(categoryIDs)

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.ProductModel
		if err := tx.Select("id").Where("sku = ?", sku).Take(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewDomainError(shared.ErrNotFound.Code,
					fmt.Sprintf("Product with SKU %q does not exist", sku))
			}
			return err
		}

		if len(ids) > 0 {
			var found []uint
			if err := tx.Model(&models.CategoryModel{}).Where("id IN ?", ids).Order("id").Pluck("id", &found).Error; err != nil {
				return err
			}
			if missing := missingIDs(ids, found); len(missing) > 0 {
				return shared.NewDomainError(shared.ErrNotFound.Code,
					fmt.Sprintf("Categories do not exist: %v", missing))
			}
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CategoryProductModel{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		links := make([]models.CategoryProductModel, 0, len(ids))
		for _, id := range ids {
			links = append(links, models.CategoryProductModel{CategoryID: id, ProductID: product.ID})
		}
		return tx.Create(&links).Error
	})
}

// LinksBySKU returns the category links of a product ordered by category ID
func (m *GormCategoryLinkManagement) LinksBySKU(ctx context.Context, sku string) ([]catalog.CategoryLink, error) {
	var rows []models.CategoryProductModel
	if err := m.db.WithContext(ctx).
		Model(&models.CategoryProductModel{}).
		Select("catalog_category_products.category_id, catalog_category_products.position").
		Joins("JOIN catalog_products ON catalog_products.id = catalog_category_products.product_id").
		Where("catalog_products.sku = ?", sku).
		Order("catalog_category_products.category_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	links := make([]catalog.CategoryLink, 0, len(rows))
	for _, row := range rows {
		links = append(links, catalog.CategoryLink{SKU: sku, CategoryID: row.CategoryID, Position: row.Position})
	}
	return links, nil
}

// missingIDs returns the IDs of want not present in found; both must be sorted
func missingIDs(want, found []uint) []uint {
	var missing []uint
	j := 0
	for _, id := range want {
		for j < len(found) && found[j] < id {
			j++
		}
		if j < len(found) && found[j] == id {
			continue
		}
		missing = append(missing, id)
	}
	return missing
}

// Ensure GormCategoryLinkManagement implements CategoryLinkManagement
var _ catalog.CategoryLinkManagement = (*GormCategoryLinkManagement)(nil)
