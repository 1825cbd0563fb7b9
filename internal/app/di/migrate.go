package di

import (
	"fmt"

	"gorm.io/gorm"

	authadapters "fitness_backend/internal/feature/auth/adapters"
	bodymetricsadapters "fitness_backend/internal/feature/bodymetrics/adapters"
	nutritionadapters "fitness_backend/internal/feature/nutrition/adapters"
)

// Models lists every table owned by the application, parents first.
func Models() []any {
	return []any{
		&authadapters.UserModel{},
		&authadapters.AccountModel{},
		&authadapters.SessionModel{},
		&bodymetricsadapters.BodyMetricModel{},
		&nutritionadapters.FoodEntryModel{},
		&nutritionadapters.GoalsModel{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
