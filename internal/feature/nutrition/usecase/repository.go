package usecase

import (
	"context"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/shared/pagination"
)

// FoodEntryRepository persists food entries. Every method is scoped to userID;
// a nil window means all of the user's entries.
type FoodEntryRepository interface {
	// List returns entries ordered by consumed_at descending.
	List(ctx context.Context, userID string, window *entity.DayWindow, page pagination.Page) ([]entity.FoodEntry, error)
	// Totals sums macros over the same rows List would return without paging.
	Totals(ctx context.Context, userID string, window *entity.DayWindow) (entity.Totals, error)
	Create(ctx context.Context, entry *entity.FoodEntry) error
	// Delete removes the row only when it belongs to userID. Deleting nothing is not an error.
	Delete(ctx context.Context, userID, id string) error
}

// GoalsRepository persists the per-user goals row.
type GoalsRepository interface {
	// FindByUserID returns ErrGoalsNotFound when no row exists.
	FindByUserID(ctx context.Context, userID string) (*entity.Goals, error)
	// Upsert inserts or replaces the user's row and returns it as stored.
	Upsert(ctx context.Context, goals *entity.Goals) (*entity.Goals, error)
}
