// Package dto defines the JSON shapes of the nutrition API.
package dto

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	"fitness_backend/internal/feature/nutrition/domain/entity"
)

// FoodEntryResponse is one logged food.
type FoodEntryResponse struct {
	ID         string    `json:"id"`
	FoodName   string    `json:"food_name"`
	Calories   float64   `json:"calories"`
	ProteinG   float64   `json:"protein_g"`
	CarbsG     float64   `json:"carbs_g"`
	FatG       float64   `json:"fat_g"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	ConsumedAt time.Time `json:"consumed_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TotalsResponse carries the summed macros.
type TotalsResponse struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

// MacroGoalsResponse is the goals block embedded in the daily summary.
type MacroGoalsResponse struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// SummaryResponse is returned by GET /api/nutrition.
type SummaryResponse struct {
	Entries []FoodEntryResponse `json:"entries"`
	Totals  TotalsResponse      `json:"totals"`
	Goals   MacroGoalsResponse  `json:"goals"`
}

// GoalsResponse is the stored goals row; id and updated_at are null for defaults.
type GoalsResponse struct {
	ID        *string    `json:"id"`
	Calories  float64    `json:"calories"`
	ProteinG  float64    `json:"protein_g"`
	CarbsG    float64    `json:"carbs_g"`
	FatG      float64    `json:"fat_g"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// MacroProgressResponse compares one macro with its goal.
type MacroProgressResponse struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

// ProgressResponse is returned by GET /api/nutrition/progress.
type ProgressResponse struct {
	Date     *types.Date           `json:"date"`
	Calories MacroProgressResponse `json:"calories"`
	Protein  MacroProgressResponse `json:"protein"`
	Carbs    MacroProgressResponse `json:"carbs"`
	Fat      MacroProgressResponse `json:"fat"`
}

func FromFoodEntry(e entity.FoodEntry) FoodEntryResponse {
	return FoodEntryResponse{
		ID:         e.ID,
		FoodName:   e.FoodName,
		Calories:   e.Calories,
		ProteinG:   e.ProteinG,
		CarbsG:     e.CarbsG,
		FatG:       e.FatG,
		Quantity:   e.Quantity,
		Unit:       e.Unit,
		ConsumedAt: e.ConsumedAt,
		CreatedAt:  e.CreatedAt,
	}
}

func FromTotals(t entity.Totals) TotalsResponse {
	return TotalsResponse{
		TotalCalories: t.Calories,
		TotalProtein:  t.Protein,
		TotalCarbs:    t.Carbs,
		TotalFat:      t.Fat,
	}
}

func FromSummary(s *entity.Summary) SummaryResponse {
	entries := make([]FoodEntryResponse, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, FromFoodEntry(e))
	}
	return SummaryResponse{
		Entries: entries,
		Totals:  FromTotals(s.Totals),
		Goals: MacroGoalsResponse{
			Calories: s.Goals.Calories,
			ProteinG: s.Goals.ProteinG,
			CarbsG:   s.Goals.CarbsG,
			FatG:     s.Goals.FatG,
		},
	}
}

func FromGoals(g *entity.Goals) GoalsResponse {
	return GoalsResponse{
		ID:        g.ID,
		Calories:  g.Calories,
		ProteinG:  g.ProteinG,
		CarbsG:    g.CarbsG,
		FatG:      g.FatG,
		UpdatedAt: g.UpdatedAt,
	}
}

func fromMacro(p entity.MacroProgress) MacroProgressResponse {
	return MacroProgressResponse{Consumed: p.Consumed, Goal: p.Goal, Percent: p.Percent}
}

func FromProgress(p *entity.Progress) ProgressResponse {
	out := ProgressResponse{
		Calories: fromMacro(p.Calories),
		Protein:  fromMacro(p.Protein),
		Carbs:    fromMacro(p.Carbs),
		Fat:      fromMacro(p.Fat),
	}
	if p.Date != nil {
		out.Date = &types.Date{Time: *p.Date}
	}
	return out
}
