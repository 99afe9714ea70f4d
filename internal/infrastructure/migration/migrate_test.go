package migration

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_Sequence(t *testing.T) {
	src, err := iofs.New(embedded, "sql")
	require.NoError(t, err)
	defer src.Close()

	var versions []uint
	v, err := src.First()
	require.NoError(t, err)
	for {
		versions = append(versions, v)

		up, _, err := src.ReadUp(v)
		require.NoError(t, err, "version %d has no up migration", v)
		body, err := io.ReadAll(up)
		require.NoError(t, err)
		_ = up.Close()
		assert.Contains(t, string(body), "CREATE TABLE")

		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "version %d has no down migration", v)
		_ = down.Close()

		next, err := src.Next(v)
		if err != nil {
			break
		}
		v = next
	}

	assert.Equal(t, []uint{1, 2, 3, 4}, versions)
}

func TestEmbeddedMigrations_CreateEveryModelTable(t *testing.T) {
	entries, err := fs.Glob(embedded, "sql/*.up.sql")
	require.NoError(t, err)

	var all strings.Builder
	for _, name := range entries {
		body, err := fs.ReadFile(embedded, name)
		require.NoError(t, err)
		all.Write(body)
	}

	for _, table := range []string{
		"store_websites",
		"stores",
		"eav_attribute_sets",
		"catalog_products",
		"catalog_product_websites",
		"catalog_categories",
		"catalog_category_products",
		"inventory_sources",
		"inventory_source_items",
		"patch_list",
	} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
}
