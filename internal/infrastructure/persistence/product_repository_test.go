package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, sku string, attributeSetID uint) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku)
	require.NoError(t, err)
	p.SetName("Test Product").
		SetURLKey(sku).
		SetPrice(decimal.RequireFromString("19.99")).
		SetVisibility(catalog.VisibilityBoth).
		SetStatus(catalog.ProductStatusEnabled).
		SetAttributeSetID(attributeSetID).
		SetWebsiteIDs([]uint{1}).
		SetStockData(catalog.StockData{UseConfigManageStock: true, IsInStock: true})
	return p
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := newTestDatabase(t)
	setID := seedReferenceData(t, db.DB)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	product := newTestProduct(t, "sku-1", setID)
	require.NoError(t, repo.Save(ctx, product))

	t.Run("IDBySKU finds the saved product", func(t *testing.T) {
		id, found, err := repo.IDBySKU(ctx, "sku-1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, product.ID, id)
	})

	t.Run("IDBySKU reports absence without error", func(t *testing.T) {
		id, found, err := repo.IDBySKU(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("FindBySKU round-trips fields and websites", func(t *testing.T) {
		got, err := repo.FindBySKU(ctx, "sku-1")
		require.NoError(t, err)
		assert.Equal(t, "Test Product", got.Name)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
		assert.Equal(t, catalog.VisibilityBoth, got.Visibility)
		assert.True(t, got.IsEnabled())
		assert.Equal(t, []uint{1}, got.WebsiteIDs)
		assert.Equal(t, catalog.StockData{UseConfigManageStock: true, IsInStock: true}, got.Stock)
	})

	t.Run("FindBySKU returns not found", func(t *testing.T) {
		_, err := repo.FindBySKU(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("ExistsBySKU", func(t *testing.T) {
		exists, err := repo.ExistsBySKU(ctx, "sku-1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Save updates an existing product in place", func(t *testing.T) {
		product.SetName("Renamed").SetStatus(catalog.ProductStatusDisabled)
		require.NoError(t, repo.Save(ctx, product))

		got, err := repo.FindBySKU(ctx, "sku-1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.False(t, got.IsEnabled())

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Save rejects a second product with the same SKU", func(t *testing.T) {
		dup := newTestProduct(t, "sku-1", setID)
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormProductRepository_SaveAssignsMissingID(t *testing.T) {
	db := newTestDatabase(t)
	setID := seedReferenceData(t, db.DB)
	repo := NewGormProductRepository(db.DB)

	product := newTestProduct(t, "no-id", setID)
	product.ID = uuid.Nil

	require.NoError(t, repo.Save(context.Background(), product))
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.False(t, product.CreatedAt.IsZero())

	found, err := repo.FindBySKU(context.Background(), "no-id")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
}

func TestGormProductRepository_SaveValidates(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)

	p, err := catalog.NewProduct("incomplete")
	require.NoError(t, err)

	err = repo.Save(context.Background(), p)
	assert.ErrorIs(t, err, shared.ErrValidation)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGormProductRepository_IDBySKU_QueryError(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT .* FROM "catalog_products" WHERE sku = \$1`).
		WillReturnError(errors.New("connection reset"))

	_, found, err := NewGormProductRepository(gormDB).IDBySKU(context.Background(), "demo-product")
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
