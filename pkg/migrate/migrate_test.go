package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/migrate"
	"github.com/amaclone/storefront/pkg/migrate/migratetest"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, migrate.ValidateEmbedded())
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := migrate.ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestValidateDirRequiresDownSection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_init.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644))

	err := migrate.ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "+goose Down")
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Order Notes!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_order_notes.sql"), path)
	require.NoError(t, migrate.ValidateDir(dir))
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", migrate.Dialect(config.DriverSQLite))
	assert.Equal(t, "postgres", migrate.Dialect(config.DriverPostgres))
	assert.Equal(t, "postgres", migrate.Dialect(""))
}

func TestUpCreatesStorefrontTables(t *testing.T) {
	client := migratetest.Open(t)
	gdb := client.DB().WithContext(context.Background())

	for _, table := range []string{"users", "products", "reviews", "orders", "order_items"} {
		assert.True(t, gdb.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, gdb.Migrator().HasColumn("orders", "shipping_zip_code"))
}
