package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	nutritionadapters "fitness_backend/internal/feature/nutrition/adapters"
	"fitness_backend/internal/feature/nutrition/usecase"
	"fitness_backend/internal/platform/cache"
)

// NewGoalsRepository wraps the SQL goals repository in the Redis cache.
// With a nil rdb the cache is a pass-through.
func NewGoalsRepository(rdb *redis.Client, db *gorm.DB) usecase.GoalsRepository {
	return cache.NewCachingGoalsRepository(rdb, cache.DefaultGoalsTTL, nutritionadapters.NewGoalsPostgres(db), "nutrition_goals")
}
