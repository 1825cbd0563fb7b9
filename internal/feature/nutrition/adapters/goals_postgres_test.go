package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/feature/nutrition/usecase"
	"fitness_backend/internal/shared/validation"
)

func TestGoalsPostgres_FindMissing(t *testing.T) {
	t.Parallel()

	_, err := NewGoalsPostgres(setupTestDB(t)).FindByUserID(context.Background(), "u1")

	assert.ErrorIs(t, err, usecase.ErrGoalsNotFound)
}

func TestGoalsPostgres_Upsert(t *testing.T) {
	t.Parallel()

	gdb := setupTestDB(t)
	repo := NewGoalsPostgres(gdb)
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return first }

	created, err := repo.Upsert(ctx, &entity.Goals{UserID: "u1", Calories: 2500, ProteinG: 180, CarbsG: 250, FatG: 70})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, 2500.0, created.Calories)
	assert.True(t, first.Equal(*created.UpdatedAt))

	second := first.Add(time.Hour)
	repo.now = func() time.Time { return second }
	updated, err := repo.Upsert(ctx, &entity.Goals{UserID: "u1", Calories: 1800, ProteinG: 150, CarbsG: 200, FatG: 65})
	require.NoError(t, err)

	assert.Equal(t, *created.ID, *updated.ID, "row is replaced in place")
	assert.Equal(t, 1800.0, updated.Calories)
	assert.Equal(t, 65.0, updated.FatG)
	assert.True(t, second.Equal(*updated.UpdatedAt))

	var count int64
	require.NoError(t, gdb.Model(&GoalsModel{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	found, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, updated, found)
}

func TestGoalsPostgres_UpsertRejectsInvalid(t *testing.T) {
	t.Parallel()

	repo := NewGoalsPostgres(setupTestDB(t))

	_, err := repo.Upsert(context.Background(), &entity.Goals{UserID: "u1", Calories: 0, ProteinG: 150, CarbsG: 200, FatG: 65})

	ve, ok := validation.AsError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "chk_nutrition_goals_calories", ve.Fields[0].Field)
}
