package usecase

import (
	"context"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/shared/pagination"
)

type mockFoodEntryRepository struct {
	ListFunc   func(ctx context.Context, userID string, window *entity.DayWindow, page pagination.Page) ([]entity.FoodEntry, error)
	TotalsFunc func(ctx context.Context, userID string, window *entity.DayWindow) (entity.Totals, error)
	CreateFunc func(ctx context.Context, entry *entity.FoodEntry) error
	DeleteFunc func(ctx context.Context, userID, id string) error

	gotWindow *entity.DayWindow
	created   []*entity.FoodEntry
}

func (m *mockFoodEntryRepository) List(ctx context.Context, userID string, window *entity.DayWindow, page pagination.Page) ([]entity.FoodEntry, error) {
	m.gotWindow = window
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, window, page)
	}
	return nil, nil
}

func (m *mockFoodEntryRepository) Totals(ctx context.Context, userID string, window *entity.DayWindow) (entity.Totals, error) {
	m.gotWindow = window
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx, userID, window)
	}
	return entity.Totals{}, nil
}

func (m *mockFoodEntryRepository) Create(ctx context.Context, entry *entity.FoodEntry) error {
	m.created = append(m.created, entry)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	entry.ID = "generated"
	return nil
}

func (m *mockFoodEntryRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

type mockGoalsRepository struct {
	FindFunc   func(ctx context.Context, userID string) (*entity.Goals, error)
	UpsertFunc func(ctx context.Context, goals *entity.Goals) (*entity.Goals, error)

	upserted []*entity.Goals
}

func (m *mockGoalsRepository) FindByUserID(ctx context.Context, userID string) (*entity.Goals, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, userID)
	}
	return nil, ErrGoalsNotFound
}

func (m *mockGoalsRepository) Upsert(ctx context.Context, goals *entity.Goals) (*entity.Goals, error) {
	m.upserted = append(m.upserted, goals)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, goals)
	}
	id := "g1"
	saved := *goals
	saved.ID = &id
	return &saved, nil
}

func ptr[T any](v T) *T { return &v }
