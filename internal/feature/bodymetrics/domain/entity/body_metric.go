// Package entity defines the body-composition measurement entity.
package entity

import "time"

// BodyMetric is a single weight and/or body-fat measurement. Either value
// may be absent. Rows are never updated.
type BodyMetric struct {
	ID                string
	UserID            string
	WeightKg          *float64
	BodyFatPercentage *float64
	RecordedAt        time.Time
	CreatedAt         time.Time
}
