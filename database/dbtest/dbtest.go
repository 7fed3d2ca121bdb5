// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sanketkurve/portfolio-backend/database"
)

// New returns a migrated Database backed by a private in-memory sqlite
// database that is closed when the test ends.
func New(t testing.TB, opts ...database.Option) database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.New(gdb, opts...)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
