package adapters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/feature/nutrition/usecase"
	"fitness_backend/internal/platform/db"
	"fitness_backend/internal/shared/pagination"
)

type foodEntryPostgres struct {
	db *gorm.DB
}

var _ usecase.FoodEntryRepository = (*foodEntryPostgres)(nil)

// NewFoodEntryPostgres creates the food entry repository.
func NewFoodEntryPostgres(db *gorm.DB) *foodEntryPostgres {
	return &foodEntryPostgres{db: db}
}

// scoped restricts a query to the user's rows inside window.
func (r *foodEntryPostgres) scoped(ctx context.Context, userID string, window *entity.DayWindow) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&FoodEntryModel{}).Where("user_id = ?", userID)
	if window != nil {
		q = q.Where("consumed_at >= ? AND consumed_at < ?", window.Start, window.End)
	}
	return q
}

func (r *foodEntryPostgres) List(ctx context.Context, userID string, window *entity.DayWindow, page pagination.Page) ([]entity.FoodEntry, error) {
	var models []FoodEntryModel
	err := r.scoped(ctx, userID, window).
		Order("consumed_at DESC").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.FoodEntry, len(models))
	for i := range models {
		out[i] = models[i].toEntity()
	}
	return out, nil
}

type totalsRow struct {
	TotalCalories float64
	TotalProtein  float64
	TotalCarbs    float64
	TotalFat      float64
}

func (r *foodEntryPostgres) Totals(ctx context.Context, userID string, window *entity.DayWindow) (entity.Totals, error) {
	var row totalsRow
	err := r.scoped(ctx, userID, window).
		Select(`COALESCE(SUM(calories), 0) AS total_calories,
			COALESCE(SUM(protein_g), 0) AS total_protein,
			COALESCE(SUM(carbs_g), 0) AS total_carbs,
			COALESCE(SUM(fat_g), 0) AS total_fat`).
		Scan(&row).Error
	if err != nil {
		return entity.Totals{}, err
	}
	return entity.Totals{
		Calories: row.TotalCalories,
		Protein:  row.TotalProtein,
		Carbs:    row.TotalCarbs,
		Fat:      row.TotalFat,
	}, nil
}

// Create assigns the id and created_at on entry.
func (r *foodEntryPostgres) Create(ctx context.Context, entry *entity.FoodEntry) error {
	m := &FoodEntryModel{
		ID:         uuid.NewString(),
		UserID:     entry.UserID,
		FoodName:   entry.FoodName,
		Calories:   entry.Calories,
		ProteinG:   entry.ProteinG,
		CarbsG:     entry.CarbsG,
		FatG:       entry.FatG,
		Quantity:   entry.Quantity,
		Unit:       entry.Unit,
		ConsumedAt: entry.ConsumedAt.UTC(),
	}
	// Select("*") so explicit zero macros are written rather than replaced by column defaults.
	if err := r.db.WithContext(ctx).Select("*").Create(m).Error; err != nil {
		return db.TranslateError(err)
	}
	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

func (r *foodEntryPostgres) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&FoodEntryModel{}).Error
}
