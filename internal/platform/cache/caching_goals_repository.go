// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/feature/nutrition/usecase"
)

// DefaultGoalsTTL is used when no TTL is given.
const DefaultGoalsTTL = 10 * time.Minute

// CachingGoalsRepository decorates a GoalsRepository with a Redis read-through cache.
// Only stored rows are cached; a miss in the inner repository is never cached,
// so default goals are always resolved fresh.
type CachingGoalsRepository struct {
	inner     usecase.GoalsRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.GoalsRepository = (*CachingGoalsRepository)(nil)

// NewCachingGoalsRepository wraps inner. A nil rdb disables caching.
// If ttl is 0, it defaults to DefaultGoalsTTL. If namespace is empty, it uses "nutrition_goals".
func NewCachingGoalsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.GoalsRepository, namespace string) *CachingGoalsRepository {
	if ttl <= 0 {
		ttl = DefaultGoalsTTL
	}
	if namespace == "" {
		namespace = "nutrition_goals"
	}
	return &CachingGoalsRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

type cachedGoals struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCached(g *entity.Goals) (cachedGoals, bool) {
	if g.ID == nil || g.UpdatedAt == nil {
		return cachedGoals{}, false
	}
	return cachedGoals{
		ID:        *g.ID,
		UserID:    g.UserID,
		Calories:  g.Calories,
		ProteinG:  g.ProteinG,
		CarbsG:    g.CarbsG,
		FatG:      g.FatG,
		UpdatedAt: g.UpdatedAt.UTC(),
	}, true
}

func (c cachedGoals) toEntity() *entity.Goals {
	return &entity.Goals{
		ID:        &c.ID,
		UserID:    c.UserID,
		Calories:  c.Calories,
		ProteinG:  c.ProteinG,
		CarbsG:    c.CarbsG,
		FatG:      c.FatG,
		UpdatedAt: &c.UpdatedAt,
	}
}

// FindByUserID checks the cache first, then falls back to the inner repository.
func (c *CachingGoalsRepository) FindByUserID(ctx context.Context, userID string) (*entity.Goals, error) {
	if c.rdb == nil {
		return c.inner.FindByUserID(ctx, userID)
	}

	key := c.cacheKey(userID)

	// 1) キャッシュを確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cg cachedGoals
		if err := json.Unmarshal(b, &cg); err == nil {
			return cg.toEntity(), nil
		}
		// 壊れたエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DBへフォールバック
	goals, err := c.inner.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュへ保存（ベストエフォート）
	if cg, ok := toCached(goals); ok {
		if b, err := json.Marshal(cg); err == nil {
			if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
				slog.Warn("failed to cache nutrition goals", "error", err, "user_id", userID)
			}
		}
	}
	return goals, nil
}

// Upsert writes through to the inner repository and then stores the saved row
// under the user's key. If the cache write fails the key is dropped instead.
func (c *CachingGoalsRepository) Upsert(ctx context.Context, goals *entity.Goals) (*entity.Goals, error) {
	saved, err := c.inner.Upsert(ctx, goals)
	if err != nil {
		return nil, err
	}
	if c.rdb == nil {
		return saved, nil
	}

	key := c.cacheKey(goals.UserID)
	if cg, ok := toCached(saved); ok {
		if b, err := json.Marshal(cg); err == nil {
			err := c.rdb.Set(ctx, key, b, c.ttl).Err()
			if err == nil {
				return saved, nil
			}
			slog.Warn("failed to refresh nutrition goals cache", "error", err, "user_id", goals.UserID)
		}
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("failed to invalidate nutrition goals cache", "error", err, "user_id", goals.UserID)
	}
	return saved, nil
}

func (c *CachingGoalsRepository) cacheKey(userID string) string {
	return c.namespace + ":" + safe(userID)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
