package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitness_backend/internal/platform/db"
)

// setupTestDB prepares an in-memory SQLite database with the auth tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// :memory: is per connection
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&UserModel{}, &AccountModel{}, &SessionModel{}), "failed to migrate tables")
	return gdb
}
