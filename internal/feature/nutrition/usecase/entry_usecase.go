package usecase

import (
	"context"
	"fmt"
	"time"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/shared/pagination"
	"fitness_backend/internal/shared/validation"
)

// DefaultLimit is the page size when none is requested.
const DefaultLimit = 100

const defaultUnit = "serving"

// GoalsProvider resolves the goals shown next to the daily entries.
type GoalsProvider interface {
	GetOrDefault(ctx context.Context, userID string) (*entity.Goals, error)
}

// CreateFoodEntryInput is the request body for a new food entry.
type CreateFoodEntryInput struct {
	FoodName   string     `json:"food_name" validate:"required,max=255"`
	Calories   *float64   `json:"calories" validate:"required,gt=0"`
	ProteinG   *float64   `json:"protein_g" validate:"omitnil,gte=0"`
	CarbsG     *float64   `json:"carbs_g" validate:"omitnil,gte=0"`
	FatG       *float64   `json:"fat_g" validate:"omitnil,gte=0"`
	Quantity   *float64   `json:"quantity" validate:"omitnil,gt=0"`
	Unit       *string    `json:"unit" validate:"omitnil,max=50"`
	ConsumedAt *time.Time `json:"consumed_at"`
}

type entryUsecase struct {
	entries FoodEntryRepository
	goals   GoalsProvider
	loc     *time.Location
	now     func() time.Time
}

// NewEntryUsecase creates the food entry usecase. Calendar days are
// interpreted in loc; nil means UTC.
func NewEntryUsecase(entries FoodEntryRepository, goals GoalsProvider, loc *time.Location) *entryUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &entryUsecase{entries: entries, goals: goals, loc: loc, now: time.Now}
}

func (u *entryUsecase) window(date *time.Time) *entity.DayWindow {
	if date == nil {
		return nil
	}
	w := entity.NewDayWindow(*date, u.loc)
	return &w
}

// List returns the user's entries, newest first, optionally restricted to one day.
func (u *entryUsecase) List(ctx context.Context, userID string, date *time.Time, page pagination.Page) ([]entity.FoodEntry, error) {
	entries, err := u.entries.List(ctx, userID, u.window(date), page)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	if entries == nil {
		entries = []entity.FoodEntry{}
	}
	return entries, nil
}

// AggregateTotals sums the user's macros for the day (or all time). Empty sets sum to zero.
func (u *entryUsecase) AggregateTotals(ctx context.Context, userID string, date *time.Time) (entity.Totals, error) {
	totals, err := u.entries.Totals(ctx, userID, u.window(date))
	if err != nil {
		return entity.Totals{}, fmt.Errorf("aggregate totals: %w", err)
	}
	return totals, nil
}

// GetEntriesWithSummary returns the day's entries together with their
// totals and the user's goals. The three reads are independent.
func (u *entryUsecase) GetEntriesWithSummary(ctx context.Context, userID string, date *time.Time, page pagination.Page) (*entity.Summary, error) {
	entries, err := u.List(ctx, userID, date, page)
	if err != nil {
		return nil, err
	}
	totals, err := u.AggregateTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := u.goals.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.Summary{Entries: entries, Totals: totals, Goals: *goals}, nil
}

// GetProgress compares the day's totals with the user's goals.
func (u *entryUsecase) GetProgress(ctx context.Context, userID string, date *time.Time) (*entity.Progress, error) {
	totals, err := u.AggregateTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := u.goals.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := entity.NewProgress(date, totals, *goals)
	return &p, nil
}

// Create validates the input, fills defaults and stores the entry.
func (u *entryUsecase) Create(ctx context.Context, userID string, in CreateFoodEntryInput) (*entity.FoodEntry, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	entry := &entity.FoodEntry{
		UserID:     userID,
		FoodName:   in.FoodName,
		Calories:   *in.Calories,
		ProteinG:   valueOr(in.ProteinG, 0),
		CarbsG:     valueOr(in.CarbsG, 0),
		FatG:       valueOr(in.FatG, 0),
		Quantity:   valueOr(in.Quantity, 1),
		Unit:       valueOr(in.Unit, defaultUnit),
		ConsumedAt: valueOr(in.ConsumedAt, u.now()).UTC(),
	}
	if err := u.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create food entry: %w", err)
	}
	return entry, nil
}

// Delete removes one of the user's entries.
func (u *entryUsecase) Delete(ctx context.Context, userID, id string) error {
	if err := u.entries.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete food entry: %w", err)
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
