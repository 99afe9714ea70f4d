package seed

import (
	"context"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/erp/storesetup/internal/domain/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) IDBySKU(ctx context.Context, sku string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttributeSetResolver is a mock implementation of catalog.AttributeSetResolver
type MockAttributeSetResolver struct {
	mock.Mock
}

func (m *MockAttributeSetResolver) AttributeSetID(ctx context.Context, entityType, name string) (uint, error) {
	args := m.Called(ctx, entityType, name)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockAttributeSetResolver) EnsureAttributeSet(ctx context.Context, entityType, name string) (uint, error) {
	args := m.Called(ctx, entityType, name)
	return args.Get(0).(uint), args.Error(1)
}

// MockStoreManager is a mock implementation of store.Manager
type MockStoreManager struct {
	mock.Mock
}

func (m *MockStoreManager) CurrentStore(ctx context.Context) (*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreManager) StoreByCode(ctx context.Context, code string) (*store.Store, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

// MockStoreRepository is a mock implementation of store.Repository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) EnsureWebsite(ctx context.Context, website *store.Website) (bool, error) {
	args := m.Called(ctx, website)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoreRepository) EnsureStore(ctx context.Context, s *store.Store) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

// MockSourceItemsSaver is a mock implementation of inventory.SourceItemsSaver
type MockSourceItemsSaver struct {
	mock.Mock
}

func (m *MockSourceItemsSaver) Execute(ctx context.Context, items []*inventory.SourceItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

// MockCategoryLinkManagement is a mock implementation of catalog.CategoryLinkManagement
type MockCategoryLinkManagement struct {
	mock.Mock
}

func (m *MockCategoryLinkManagement) AssignProductToCategories(ctx context.Context, sku string, categoryIDs []uint) error {
	args := m.Called(ctx, sku, categoryIDs)
	return args.Error(0)
}

func (m *MockCategoryLinkManagement) LinksBySKU(ctx context.Context, sku string) ([]catalog.CategoryLink, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CategoryLink), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]catalog.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) EnsureExists(ctx context.Context, category *catalog.Category) (bool, error) {
	args := m.Called(ctx, category)
	return args.Bool(0), args.Error(1)
}

// MockSourceRepository is a mock implementation of inventory.SourceRepository
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) FindByCode(ctx context.Context, code string) (*inventory.Source, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Source), args.Error(1)
}

func (m *MockSourceRepository) EnsureExists(ctx context.Context, source *inventory.Source) (bool, error) {
	args := m.Called(ctx, source)
	return args.Bool(0), args.Error(1)
}
