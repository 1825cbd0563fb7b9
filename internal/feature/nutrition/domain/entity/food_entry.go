// Package entity defines nutrition entries, goals and the daily summary.
package entity

import "time"

// FoodEntry is one logged food with its macro breakdown. Rows are never updated.
type FoodEntry struct {
	ID         string
	UserID     string
	FoodName   string
	Calories   float64
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	Quantity   float64
	Unit       string
	ConsumedAt time.Time
	CreatedAt  time.Time
}

// Totals are the summed macros of a set of entries.
type Totals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// DayWindow is the half-open interval [Start, End) covering one local calendar day.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// NewDayWindow returns the window for the calendar date of day, with
// midnight taken in loc. Bounds are returned in UTC.
func NewDayWindow(day time.Time, loc *time.Location) DayWindow {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return DayWindow{
		Start: start.UTC(),
		End:   time.Date(y, m, d+1, 0, 0, 0, 0, loc).UTC(),
	}
}

// Contains reports whether t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
