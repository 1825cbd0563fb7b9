// Package usecase はbody metricsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"fitness_backend/internal/feature/bodymetrics/domain/entity"
	"fitness_backend/internal/shared/pagination"
	"fitness_backend/internal/shared/validation"
)

// DefaultLimit is the page size when none is requested.
const DefaultLimit = 30

// BodyMetricRepository は計測データの永続化層を抽象化します。
// Every method is scoped to userID.
type BodyMetricRepository interface {
	// List returns rows ordered by recorded_at descending.
	List(ctx context.Context, userID string, page pagination.Page) ([]entity.BodyMetric, error)
	Create(ctx context.Context, metric *entity.BodyMetric) error
	// Delete removes the row only when it belongs to userID. Deleting nothing is not an error.
	Delete(ctx context.Context, userID, id string) error
}

// CreateBodyMetricInput is the request body for a new measurement.
type CreateBodyMetricInput struct {
	WeightKg          *float64   `json:"weight_kg" validate:"omitnil,gt=0"`
	BodyFatPercentage *float64   `json:"body_fat_percentage" validate:"omitnil,gte=0,lte=100"`
	RecordedAt        *time.Time `json:"recorded_at"`
}

type bodyMetricsUsecase struct {
	repo BodyMetricRepository
	now  func() time.Time
}

// NewBodyMetricsUsecase creates the body metrics usecase.
func NewBodyMetricsUsecase(repo BodyMetricRepository) *bodyMetricsUsecase {
	return &bodyMetricsUsecase{repo: repo, now: time.Now}
}

// List returns the user's measurements, newest first. Never nil.
func (u *bodyMetricsUsecase) List(ctx context.Context, userID string, page pagination.Page) ([]entity.BodyMetric, error) {
	metrics, err := u.repo.List(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	if metrics == nil {
		metrics = []entity.BodyMetric{}
	}
	return metrics, nil
}

// Create validates and stores a measurement. recorded_at defaults to now.
func (u *bodyMetricsUsecase) Create(ctx context.Context, userID string, in CreateBodyMetricInput) (*entity.BodyMetric, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	recordedAt := u.now()
	if in.RecordedAt != nil {
		recordedAt = *in.RecordedAt
	}

	metric := &entity.BodyMetric{
		UserID:            userID,
		WeightKg:          in.WeightKg,
		BodyFatPercentage: in.BodyFatPercentage,
		RecordedAt:        recordedAt.UTC(),
	}
	if err := u.repo.Create(ctx, metric); err != nil {
		return nil, fmt.Errorf("create body metric: %w", err)
	}
	return metric, nil
}

// Delete removes one of the user's measurements.
func (u *bodyMetricsUsecase) Delete(ctx context.Context, userID, id string) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete body metric: %w", err)
	}
	return nil
}
