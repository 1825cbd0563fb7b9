// Package adapters provides the GORM repository for body metrics.
package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitness_backend/internal/feature/bodymetrics/domain/entity"
	"fitness_backend/internal/feature/bodymetrics/usecase"
	"fitness_backend/internal/platform/db"
	"fitness_backend/internal/shared/pagination"
)

// BodyMetricModel is the GORM model for the body_metrics table.
type BodyMetricModel struct {
	ID                string    `gorm:"column:id;primaryKey;size:36"`
	UserID            string    `gorm:"column:user_id;size:36;not null;index:idx_body_metrics_user_recorded,priority:1"`
	WeightKg          *float64  `gorm:"column:weight_kg;check:chk_body_metrics_weight_kg,weight_kg IS NULL OR weight_kg > 0"`
	BodyFatPercentage *float64  `gorm:"column:body_fat_percentage;check:chk_body_metrics_body_fat,body_fat_percentage IS NULL OR (body_fat_percentage >= 0 AND body_fat_percentage <= 100)"`
	RecordedAt        time.Time `gorm:"column:recorded_at;not null;index:idx_body_metrics_user_recorded,priority:2,sort:desc"`
	CreatedAt         time.Time `gorm:"column:created_at;not null"`
}

func (BodyMetricModel) TableName() string { return "body_metrics" }

func (m *BodyMetricModel) toEntity() entity.BodyMetric {
	return entity.BodyMetric{
		ID:                m.ID,
		UserID:            m.UserID,
		WeightKg:          m.WeightKg,
		BodyFatPercentage: m.BodyFatPercentage,
		RecordedAt:        m.RecordedAt,
		CreatedAt:         m.CreatedAt,
	}
}

type bodyMetricPostgres struct {
	db *gorm.DB
}

var _ usecase.BodyMetricRepository = (*bodyMetricPostgres)(nil)

// NewBodyMetricPostgres creates the body metrics repository.
func NewBodyMetricPostgres(db *gorm.DB) *bodyMetricPostgres {
	return &bodyMetricPostgres{db: db}
}

func (r *bodyMetricPostgres) List(ctx context.Context, userID string, page pagination.Page) ([]entity.BodyMetric, error) {
	var models []BodyMetricModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.BodyMetric, len(models))
	for i := range models {
		out[i] = models[i].toEntity()
	}
	return out, nil
}

// Create assigns the id and created_at on metric.
func (r *bodyMetricPostgres) Create(ctx context.Context, metric *entity.BodyMetric) error {
	m := &BodyMetricModel{
		ID:                uuid.NewString(),
		UserID:            metric.UserID,
		WeightKg:          metric.WeightKg,
		BodyFatPercentage: metric.BodyFatPercentage,
		RecordedAt:        metric.RecordedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return db.TranslateError(err)
	}
	metric.ID = m.ID
	metric.CreatedAt = m.CreatedAt
	return nil
}

func (r *bodyMetricPostgres) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&BodyMetricModel{}).Error
}
