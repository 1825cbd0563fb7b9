// Package dto defines the JSON shapes of the body metrics API.
package dto

import (
	"time"

	"fitness_backend/internal/feature/bodymetrics/domain/entity"
)

// BodyMetricResponse is one measurement as returned to clients.
type BodyMetricResponse struct {
	ID                string    `json:"id"`
	WeightKg          *float64  `json:"weight_kg"`
	BodyFatPercentage *float64  `json:"body_fat_percentage"`
	RecordedAt        time.Time `json:"recorded_at"`
	CreatedAt         time.Time `json:"created_at"`
}

// FromEntity converts a domain BodyMetric.
func FromEntity(m entity.BodyMetric) BodyMetricResponse {
	return BodyMetricResponse{
		ID:                m.ID,
		WeightKg:          m.WeightKg,
		BodyFatPercentage: m.BodyFatPercentage,
		RecordedAt:        m.RecordedAt,
		CreatedAt:         m.CreatedAt,
	}
}

// FromEntities converts a list, returning an empty (non-nil) slice for no rows.
func FromEntities(ms []entity.BodyMetric) []BodyMetricResponse {
	out := make([]BodyMetricResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromEntity(m))
	}
	return out
}
