package entity

import "time"

// Summary is the daily view: entries plus their totals and the user's goals.
type Summary struct {
	Entries []FoodEntry
	Totals  Totals
	Goals   Goals
}

// MacroProgress compares consumption with a target.
type MacroProgress struct {
	Consumed float64
	Goal     float64
	Percent  float64 // 0..100
}

// NewMacroProgress computes the capped percentage. A non-positive goal yields 0.
func NewMacroProgress(consumed, goal float64) MacroProgress {
	p := MacroProgress{Consumed: consumed, Goal: goal}
	if goal > 0 {
		p.Percent = min(consumed/goal*100, 100)
	}
	return p
}

// Progress is consumption against goals for one day (or all time when Date is nil).
type Progress struct {
	Date     *time.Time
	Calories MacroProgress
	Protein  MacroProgress
	Carbs    MacroProgress
	Fat      MacroProgress
}

// NewProgress builds per-macro progress from totals and goals.
func NewProgress(date *time.Time, t Totals, g Goals) Progress {
	return Progress{
		Date:     date,
		Calories: NewMacroProgress(t.Calories, g.Calories),
		Protein:  NewMacroProgress(t.Protein, g.ProteinG),
		Carbs:    NewMacroProgress(t.Carbs, g.CarbsG),
		Fat:      NewMacroProgress(t.Fat, g.FatG),
	}
}
