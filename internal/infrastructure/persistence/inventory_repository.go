package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/erp/storesetup/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSourceRepository implements SourceRepository using GORM
type GormSourceRepository struct {
	db *gorm.DB
}

// NewGormSourceRepository creates a new GormSourceRepository
func NewGormSourceRepository(db *gorm.DB) *GormSourceRepository {
	return &GormSourceRepository{db: db}
}

// FindByCode finds a source by its code
func (r *GormSourceRepository) FindByCode(ctx context.Context, code string) (*inventory.Source, error) {
	var model models.SourceModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// EnsureExists inserts the source unless its code is already taken
func (r *GormSourceRepository) EnsureExists(ctx context.Context, source *inventory.Source) (bool, error) {
	model := models.SourceModel{Code: source.Code, Name: source.Name, Enabled: source.Enabled}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GormSourceItemsSaver implements SourceItemsSaver using GORM
type GormSourceItemsSaver struct {
	db *gorm.DB
}

// NewGormSourceItemsSaver creates a new GormSourceItemsSaver
func NewGormSourceItemsSaver(db *gorm.DB) *GormSourceItemsSaver {
	return &GormSourceItemsSaver{db: db}
}

// Execute validates the items and upserts them on (source_code, sku).
// When the same key appears twice the later item wins.
func (s *GormSourceItemsSaver) Execute(ctx context.Context, items []*inventory.SourceItem) error {
	if len(items) == 0 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Input data is empty")
	}

	type key struct{ source, sku string }
	byKey := make(map[key]*models.SourceItemModel, len(items))
	order := make([]key, 0, len(items))
	codes := make(map[string]struct{})
	now := time.Now()
	for i, item := range items {
		if item == nil {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("Source item %d is nil", i))
		}
		if err := item.Validate(); err != nil {
			return err
		}
		k := key{item.SourceCode, item.SKU}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		model := models.SourceItemModelFromDomain(item)
		model.UpdatedAt = now
		byKey[k] = model
		codes[item.SourceCode] = struct{}{}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSourcesExist(tx, codes); err != nil {
			return err
		}

		rows := make([]*models.SourceItemModel, 0, len(order))
		for _, k := range order {
			rows = append(rows, byKey[k])
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_code"}, {Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "status", "updated_at"}),
		}).Create(&rows).Error
	})
}

func ensureSourcesExist(tx *gorm.DB, codes map[string]struct{}) error {
	want := make([]string, 0, len(codes))
	for code := range codes {
		want = append(want, code)
	}
	sort.Strings(want)

	var found []string
	if err := tx.Model(&models.SourceModel{}).Where("code IN ?", want).Pluck("code", &found).Error; err != nil {
		return err
	}
	known := make(map[string]struct{}, len(found))
	for _, code := range found {
		known[code] = struct{}{}
	}
	for _, code := range want {
		if _, ok := known[code]; !ok {
			return shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("Source %q does not exist", code))
		}
	}
	return nil
}

// GormSourceItemRepository implements SourceItemRepository using GORM
type GormSourceItemRepository struct {
	db *gorm.DB
}

// NewGormSourceItemRepository creates a new GormSourceItemRepository
func NewGormSourceItemRepository(db *gorm.DB) *GormSourceItemRepository {
	return &GormSourceItemRepository{db: db}
}

// FindBySKU returns every source item of a SKU ordered by source code
func (r *GormSourceItemRepository) FindBySKU(ctx context.Context, sku string) ([]inventory.SourceItem, error) {
	var rows []models.SourceItemModel
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).Order("source_code").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.SourceItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToDomain())
	}
	return items, nil
}

// Ensure the inventory repositories implement their interfaces
var (
	_ inventory.SourceRepository     = (*GormSourceRepository)(nil)
	_ inventory.SourceItemsSaver     = (*GormSourceItemsSaver)(nil)
	_ inventory.SourceItemRepository = (*GormSourceItemRepository)(nil)
)
