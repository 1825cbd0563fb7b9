package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitness_backend/internal/shared/validation"
)

// TestBuildDSN_Discrete verifies the key/value DSN built from discrete fields.
func TestBuildDSN_Discrete(t *testing.T) {
	t.Parallel()

	cfg := Config{
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable TimeZone=UTC"
	assert.Equal(t, expected, BuildDSN(cfg))
}

// TestBuildDSN_URLTakesPrecedence verifies that DATABASE_URL wins over discrete fields.
func TestBuildDSN_URLTakesPrecedence(t *testing.T) {
	t.Parallel()

	cfg := Config{
		URL:  "postgres://u:p@db.example.com:5432/fitness?sslmode=require",
		Host: "localhost",
		Port: "5432",
	}

	assert.Equal(t, cfg.URL, BuildDSN(cfg))
}

func TestConfig_UsesPostgres(t *testing.T) {
	t.Parallel()

	assert.True(t, Config{URL: "postgres://x"}.UsesPostgres())
	assert.True(t, Config{Host: "localhost"}.UsesPostgres())
	assert.False(t, Config{SQLitePath: "./fitness.db"}.UsesPostgres())
}

// TestConnectWithRetry_SuccessOnFirstTry returns the DB without retrying.
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure keeps trying until the opener succeeds.
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel: waits through two retry intervals.
	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries gives up once the deadline passes.
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	start := time.Now()
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.GreaterOrEqual(t, attempts, 2)
	assert.Less(t, time.Since(start), retryInterval, "should not sleep past the deadline")
}

// TestLoadConfigFromEnv reads every field from the environment.
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, "5433", cfg.Port)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, "envdb", cfg.Name)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, "./fitness.db", cfg.SQLitePath)
	assert.False(t, cfg.RunMigrations)
}

func TestOpen_SQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(Config{SQLitePath: path})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)
}

func TestTranslateError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, TranslateError(nil))
	})

	t.Run("non-postgres error passes through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("boom")
		assert.Same(t, orig, TranslateError(orig))
	})

	t.Run("check violation becomes validation error", func(t *testing.T) {
		t.Parallel()
		pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "chk_food_entries_calories"}

		err := TranslateError(pgErr)

		ve, ok := validation.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "chk_food_entries_calories", ve.Fields[0].Field)
	})

	t.Run("unique violation wraps ErrDuplicate", func(t *testing.T) {
		t.Parallel()
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

		err := TranslateError(pgErr)

		assert.ErrorIs(t, err, ErrDuplicate)
		var target *pgconn.PgError
		assert.ErrorAs(t, err, &target)
	})
}

type constrained struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex"`
	Qty   int    `gorm:"check:chk_constrained_qty,qty > 0"`
}

func TestTranslateError_SQLite(t *testing.T) {
	t.Parallel()

	gdb, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&constrained{}))

	require.NoError(t, gdb.Create(&constrained{Email: "a@example.com", Qty: 1}).Error)

	dupErr := TranslateError(gdb.Create(&constrained{Email: "a@example.com", Qty: 1}).Error)
	assert.ErrorIs(t, dupErr, ErrDuplicate)

	checkErr := TranslateError(gdb.Create(&constrained{Email: "b@example.com", Qty: 0}).Error)
	ve, ok := validation.AsError(checkErr)
	require.True(t, ok, "got %v", checkErr)
	assert.Equal(t, "chk_constrained_qty", ve.Fields[0].Field)
}
