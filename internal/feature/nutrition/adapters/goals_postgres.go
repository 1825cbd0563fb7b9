package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/feature/nutrition/usecase"
	"fitness_backend/internal/platform/db"
)

type goalsPostgres struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.GoalsRepository = (*goalsPostgres)(nil)

// NewGoalsPostgres creates the goals repository.
func NewGoalsPostgres(db *gorm.DB) *goalsPostgres {
	return &goalsPostgres{db: db, now: time.Now}
}

func (r *goalsPostgres) FindByUserID(ctx context.Context, userID string) (*entity.Goals, error) {
	var m GoalsModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGoalsNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// Upsert relies on ON CONFLICT (user_id) so concurrent saves cannot create two rows.
// The row is re-read afterwards because the conflicting row keeps its original id.
func (r *goalsPostgres) Upsert(ctx context.Context, g *entity.Goals) (*entity.Goals, error) {
	m := &GoalsModel{
		ID:        uuid.NewString(),
		UserID:    g.UserID,
		Calories:  g.Calories,
		ProteinG:  g.ProteinG,
		CarbsG:    g.CarbsG,
		FatG:      g.FatG,
		UpdatedAt: r.now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories", "protein_g", "carbs_g", "fat_g", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return r.FindByUserID(ctx, g.UserID)
}
