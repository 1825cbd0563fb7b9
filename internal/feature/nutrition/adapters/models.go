// Package adapters provides the GORM repositories for food entries and goals.
package adapters

import (
	"time"

	"fitness_backend/internal/feature/nutrition/domain/entity"
)

// FoodEntryModel is the GORM model for the food_entries table.
type FoodEntryModel struct {
	ID         string    `gorm:"column:id;primaryKey;size:36"`
	UserID     string    `gorm:"column:user_id;size:36;not null;index:idx_food_entries_user_consumed,priority:1"`
	FoodName   string    `gorm:"column:food_name;size:255;not null;check:chk_food_entries_food_name,food_name <> ''"`
	Calories   float64   `gorm:"column:calories;not null;check:chk_food_entries_calories,calories > 0"`
	ProteinG   float64   `gorm:"column:protein_g;not null;default:0;check:chk_food_entries_protein_g,protein_g >= 0"`
	CarbsG     float64   `gorm:"column:carbs_g;not null;default:0;check:chk_food_entries_carbs_g,carbs_g >= 0"`
	FatG       float64   `gorm:"column:fat_g;not null;default:0;check:chk_food_entries_fat_g,fat_g >= 0"`
	Quantity   float64   `gorm:"column:quantity;not null;default:1;check:chk_food_entries_quantity,quantity > 0"`
	Unit       string    `gorm:"column:unit;size:50;not null;default:serving"`
	ConsumedAt time.Time `gorm:"column:consumed_at;not null;index:idx_food_entries_user_consumed,priority:2,sort:desc"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (FoodEntryModel) TableName() string { return "food_entries" }

func (m *FoodEntryModel) toEntity() entity.FoodEntry {
	return entity.FoodEntry{
		ID:         m.ID,
		UserID:     m.UserID,
		FoodName:   m.FoodName,
		Calories:   m.Calories,
		ProteinG:   m.ProteinG,
		CarbsG:     m.CarbsG,
		FatG:       m.FatG,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		ConsumedAt: m.ConsumedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// GoalsModel is the GORM model for the nutrition_goals table. One row per user.
type GoalsModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	UserID    string    `gorm:"column:user_id;size:36;not null;uniqueIndex"`
	Calories  float64   `gorm:"column:calories;not null;check:chk_nutrition_goals_calories,calories > 0"`
	ProteinG  float64   `gorm:"column:protein_g;not null;check:chk_nutrition_goals_protein_g,protein_g >= 0"`
	CarbsG    float64   `gorm:"column:carbs_g;not null;check:chk_nutrition_goals_carbs_g,carbs_g >= 0"`
	FatG      float64   `gorm:"column:fat_g;not null;check:chk_nutrition_goals_fat_g,fat_g >= 0"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GoalsModel) TableName() string { return "nutrition_goals" }

func (m *GoalsModel) toEntity() *entity.Goals {
	id := m.ID
	updated := m.UpdatedAt
	return &entity.Goals{
		ID:        &id,
		UserID:    m.UserID,
		Calories:  m.Calories,
		ProteinG:  m.ProteinG,
		CarbsG:    m.CarbsG,
		FatG:      m.FatG,
		UpdatedAt: &updated,
	}
}
