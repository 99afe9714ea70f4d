package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/storesetup/internal/domain/catalog"
	"github.com/erp/storesetup/internal/domain/inventory"
	"github.com/erp/storesetup/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDefaultWebsitesPatch_Apply(t *testing.T) {
	repo := new(MockStoreRepository)
	var websites []*store.Website
	var stores []*store.Store
	repo.On("EnsureWebsite", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { websites = append(websites, args.Get(1).(*store.Website)) }).
		Return(true, nil)
	repo.On("EnsureStore", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stores = append(stores, args.Get(1).(*store.Store)) }).
		Return(false, nil)

	require.NoError(t, NewDefaultWebsitesPatch(repo).Apply(context.Background()))

	require.Len(t, websites, 2)
	assert.Equal(t, "admin", websites[0].Code)
	assert.Equal(t, store.AdminWebsiteID, websites[0].ID)
	assert.Equal(t, "base", websites[1].Code)
	assert.True(t, websites[1].IsDefault)

	require.Len(t, stores, 2)
	assert.True(t, stores[0].IsAdmin())
	assert.Equal(t, "default", stores[1].Code)
	assert.Equal(t, store.DefaultWebsiteID, stores[1].WebsiteID)
	assert.True(t, stores[1].IsDefault)
}

func TestDefaultWebsitesPatch_Error(t *testing.T) {
	repo := new(MockStoreRepository)
	dbErr := errors.New("disk full")
	repo.On("EnsureWebsite", mock.Anything, mock.Anything).Return(false, dbErr)

	err := NewDefaultWebsitesPatch(repo).Apply(context.Background())
	assert.ErrorIs(t, err, dbErr)
	repo.AssertNotCalled(t, "EnsureStore", mock.Anything, mock.Anything)
}

func TestDefaultAttributeSetPatch_Apply(t *testing.T) {
	resolver := new(MockAttributeSetResolver)
	resolver.On("EnsureAttributeSet", mock.Anything, catalog.EntityTypeProduct, catalog.DefaultAttributeSetName).Return(uint(4), nil)

	require.NoError(t, NewDefaultAttributeSetPatch(resolver).Apply(context.Background()))
	resolver.AssertExpectations(t)
}

func TestDefaultCategoriesPatch_Apply(t *testing.T) {
	repo := new(MockCategoryRepository)
	var ensured []*catalog.Category
	repo.On("EnsureExists", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { ensured = append(ensured, args.Get(1).(*catalog.Category)) }).
		Return(true, nil)

	require.NoError(t, NewDefaultCategoriesPatch(repo).Apply(context.Background()))

	require.Len(t, ensured, 2)
	assert.Equal(t, catalog.RootCategoryID, ensured[0].ID)
	assert.True(t, ensured[0].IsRoot())
	assert.Equal(t, catalog.DefaultCategoryID, ensured[1].ID)
	assert.Equal(t, "1/2", ensured[1].Path)
	assert.Equal(t, 1, ensured[1].Level)
}

func TestDefaultSourcePatch_Apply(t *testing.T) {
	repo := new(MockSourceRepository)
	repo.On("EnsureExists", mock.Anything, mock.MatchedBy(func(s *inventory.Source) bool {
		return s.Code == inventory.DefaultSourceCode && s.Enabled
	})).Return(false, nil)

	require.NoError(t, NewDefaultSourcePatch(repo).Apply(context.Background()))
	repo.AssertExpectations(t)
}
