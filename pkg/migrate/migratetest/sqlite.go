// Package migratetest opens migrated in-memory sqlite databases for package tests.
package migratetest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/migrate"
)

// Open returns a client on a fresh in-memory database named after the test, with every
// embedded migration applied. The connection is closed when the test ends.
func Open(t testing.TB) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name),
		MaxOpenConns: 1,
	}

	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, migrate.Up(context.Background(), client))
	return client
}
