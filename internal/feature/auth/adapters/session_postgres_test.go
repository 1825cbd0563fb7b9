package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitness_backend/internal/feature/auth/domain/entity"
	"fitness_backend/internal/feature/auth/usecase"
)

// seedSession creates a test session in the database for testing.
func seedSession(t *testing.T, gdb *gorm.DB, id, userID string, createdAt, expiresAt time.Time, revokedAt *time.Time) {
	t.Helper()

	err := gdb.Create(&SessionModel{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: createdAt.UTC(),
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: revokedAt,
	}).Error
	require.NoError(t, err, "failed to seed session")
}

func TestSessionPostgres_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo := NewSessionPostgres(setupTestDB(t))
	ctx := context.Background()
	now := time.Now()

	s := &entity.Session{
		ID: "s1", UserID: "u1", UserAgent: "ua", IPAddress: "::1",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "::1", got.IPAddress)
	assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Second)
	assert.True(t, got.IsValid())

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionPostgres_Revoke(t *testing.T) {
	t.Parallel()

	gdb := setupTestDB(t)
	repo := NewSessionPostgres(gdb)
	ctx := context.Background()
	now := time.Now()
	seedSession(t, gdb, "s1", "u1", now, now.Add(time.Hour), nil)

	require.NoError(t, repo.Revoke(ctx, "s1"))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err, "revoked sessions stay readable")
	assert.True(t, got.IsRevoked())

	assert.ErrorIs(t, repo.Revoke(ctx, "s1"), usecase.ErrSessionRevoked, "second revoke loses")
	assert.ErrorIs(t, repo.Revoke(ctx, "missing"), usecase.ErrSessionNotFound)
}

// 同じセッションへの同時失効は1件だけ成功する。
func TestSessionPostgres_RevokeConcurrent(t *testing.T) {
	t.Parallel()

	gdb := setupTestDB(t)
	repo := NewSessionPostgres(gdb)
	now := time.Now()
	seedSession(t, gdb, "s1", "u1", now, now.Add(time.Hour), nil)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Revoke(context.Background(), "s1")
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, usecase.ErrSessionRevoked)
	}
	assert.Equal(t, 1, succeeded)
}

func TestSessionPostgres_CountAndDeleteOldest(t *testing.T) {
	t.Parallel()

	gdb := setupTestDB(t)
	repo := NewSessionPostgres(gdb)
	ctx := context.Background()
	now := time.Now()
	revoked := now.Add(-time.Minute)

	seedSession(t, gdb, "oldest", "u1", now.Add(-3*time.Hour), now.Add(time.Hour), nil)
	seedSession(t, gdb, "middle", "u1", now.Add(-2*time.Hour), now.Add(time.Hour), nil)
	seedSession(t, gdb, "newest", "u1", now.Add(-time.Hour), now.Add(time.Hour), nil)
	seedSession(t, gdb, "expired", "u1", now.Add(-5*time.Hour), now.Add(-time.Hour), nil)
	seedSession(t, gdb, "revoked", "u1", now.Add(-6*time.Hour), now.Add(time.Hour), &revoked)
	seedSession(t, gdb, "other-user", "u2", now.Add(-7*time.Hour), now.Add(time.Hour), nil)

	count, err := repo.CountByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, repo.DeleteOldestByUserID(ctx, "u1"))

	_, err = repo.FindByID(ctx, "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	_, err = repo.FindByID(ctx, "other-user")
	assert.NoError(t, err)

	count, err = repo.CountByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	assert.NoError(t, repo.DeleteOldestByUserID(ctx, "nobody"))
}
