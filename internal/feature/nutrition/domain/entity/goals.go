package entity

import "time"

// Default daily targets used until a user saves their own.
const (
	DefaultCalories = 2000
	DefaultProteinG = 150
	DefaultCarbsG   = 200
	DefaultFatG     = 65
)

// Goals are a user's daily nutrition targets. ID and UpdatedAt are nil
// for the unsaved defaults.
type Goals struct {
	ID        *string
	UserID    string
	Calories  float64
	ProteinG  float64
	CarbsG    float64
	FatG      float64
	UpdatedAt *time.Time
}

// DefaultGoals returns the fallback targets for userID.
func DefaultGoals(userID string) *Goals {
	return &Goals{
		UserID:   userID,
		Calories: DefaultCalories,
		ProteinG: DefaultProteinG,
		CarbsG:   DefaultCarbsG,
		FatG:     DefaultFatG,
	}
}

// IsDefault reports whether the goals were never saved.
func (g *Goals) IsDefault() bool {
	return g.ID == nil
}
