package migrate

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSQLMigrationStampsVersion(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 1, 9, 4, 0, 0, time.UTC)

	path, err := createSQLMigration(dir, "Add cart_snapshots", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20261001090400_add_cart_snapshots.sql"), path)

	_, err = createSQLMigration(dir, "add cart snapshots", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSanitizeMigrationName(t *testing.T) {
	assert.Equal(t, "orders_add_notes", sanitizeMigrationName("  Orders: add notes! "))
	assert.Equal(t, "", sanitizeMigrationName("!!!"))

	_, err := createSQLMigration(t.TempDir(), "!!!", time.Now())
	require.Error(t, err)
}
