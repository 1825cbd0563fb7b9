package usecase

import (
	"context"
	"errors"
	"fmt"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/shared/validation"
)

// UpsertGoalsInput is the request body for saving goals. Omitted fields
// reset to their defaults; the save is a full replace.
type UpsertGoalsInput struct {
	Calories *float64 `json:"calories" validate:"omitnil,gt=0"`
	ProteinG *float64 `json:"protein_g" validate:"omitnil,gte=0"`
	CarbsG   *float64 `json:"carbs_g" validate:"omitnil,gte=0"`
	FatG     *float64 `json:"fat_g" validate:"omitnil,gte=0"`
}

type goalsUsecase struct {
	repo GoalsRepository
}

// NewGoalsUsecase creates the goals usecase.
func NewGoalsUsecase(repo GoalsRepository) *goalsUsecase {
	return &goalsUsecase{repo: repo}
}

// GetOrDefault returns the saved goals or, when none exist, the defaults.
// Defaults are never persisted.
func (u *goalsUsecase) GetOrDefault(ctx context.Context, userID string) (*entity.Goals, error) {
	goals, err := u.repo.FindByUserID(ctx, userID)
	if errors.Is(err, ErrGoalsNotFound) {
		return entity.DefaultGoals(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find goals: %w", err)
	}
	return goals, nil
}

// Upsert validates and stores the user's goals.
func (u *goalsUsecase) Upsert(ctx context.Context, userID string, in UpsertGoalsInput) (*entity.Goals, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	goals := entity.DefaultGoals(userID)
	if in.Calories != nil {
		goals.Calories = *in.Calories
	}
	if in.ProteinG != nil {
		goals.ProteinG = *in.ProteinG
	}
	if in.CarbsG != nil {
		goals.CarbsG = *in.CarbsG
	}
	if in.FatG != nil {
		goals.FatG = *in.FatG
	}

	saved, err := u.repo.Upsert(ctx, goals)
	if err != nil {
		return nil, fmt.Errorf("upsert goals: %w", err)
	}
	return saved, nil
}
