package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"fitness_backend/internal/app/config"
	"fitness_backend/internal/app/di"
	"fitness_backend/internal/app/router"
	authadapters "fitness_backend/internal/feature/auth/adapters"
	authhandler "fitness_backend/internal/feature/auth/transport/handler"
	authusecase "fitness_backend/internal/feature/auth/usecase"
	bodymetricsadapters "fitness_backend/internal/feature/bodymetrics/adapters"
	bodymetricshandler "fitness_backend/internal/feature/bodymetrics/transport/handler"
	bodymetricsusecase "fitness_backend/internal/feature/bodymetrics/usecase"
	nutritionadapters "fitness_backend/internal/feature/nutrition/adapters"
	nutritionhandler "fitness_backend/internal/feature/nutrition/transport/handler"
	nutritionusecase "fitness_backend/internal/feature/nutrition/usecase"
	"fitness_backend/internal/platform/db"
	"fitness_backend/internal/platform/http/handler"
	jwtmw "fitness_backend/internal/platform/jwt"
	platformredis "fitness_backend/internal/platform/redis"
	"fitness_backend/internal/platform/telemetry"
	"fitness_backend/internal/shared/ratelimiter"
)

const (
	accessTokenTTL = time.Hour
	// auth endpoints: 20 requests per minute per client IP
	authRateLimit    = 20
	authRateInterval = time.Minute
	shutdownTimeout  = 30 * time.Second
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		slog.Warn("tracing unavailable", "error", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// db
	dbCfg := db.LoadConfigFromEnv()
	gdb, err := db.Open(dbCfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if dbCfg.RunMigrations {
		if err := di.Migrate(gdb); err != nil {
			return err
		}
		slog.Info("database migrations applied")
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, platformredis.LoadConfigFromEnv()); err != nil {
		slog.Warn("Redis unavailable. Running without cache; sessions stored in SQL.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Tokens
	key, err := jwtmw.DeriveKey(cfg.AuthSecret)
	if err != nil {
		return fmt.Errorf("derive token key: %w", err)
	}
	tokens := jwtmw.NewGenerator(key, accessTokenTTL)

	// Repository
	userRepo := authadapters.NewUserPostgres(gdb)
	accountRepo := authadapters.NewAccountPostgres(gdb)
	sessionRepo := di.NewSessionRepository(rdb, gdb)
	bodyMetricRepo := bodymetricsadapters.NewBodyMetricPostgres(gdb)
	foodEntryRepo := nutritionadapters.NewFoodEntryPostgres(gdb)
	goalsRepo := di.NewGoalsRepository(rdb, gdb)

	// Usecase
	identity := authusecase.NewIdentityProvider(userRepo, accountRepo)
	authUC := authusecase.NewAuthUsecase(di.NewOAuthProvider(cfg), identity, userRepo, sessionRepo, tokens, authusecase.DefaultSessionTTL)
	bodyMetricsUC := bodymetricsusecase.NewBodyMetricsUsecase(bodyMetricRepo)
	goalsUC := nutritionusecase.NewGoalsUsecase(goalsRepo)
	entryUC := nutritionusecase.NewEntryUsecase(foodEntryRepo, goalsUC, cfg.Location)

	// Handler
	deps := map[string]handler.Pinger{"database": sqlDB}
	if rdb != nil {
		deps["redis"] = handler.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	authLimiter := ratelimiter.NewRateLimiter(authRateLimit, authRateInterval)
	go authLimiter.Run(ctx.Done(), 10*time.Minute)

	r := router.NewRouter(router.Deps{
		Tokens:      tokens,
		AuthLimiter: authLimiter,
		CORSOrigins: cfg.CORSOrigins,
		WebDir:      cfg.WebDir,
		Health:      handler.NewHealthHandler(deps),
		Auth: authhandler.NewAuthHandler(authUC, authhandler.CookieConfig{
			Secure:    cfg.IsProduction(),
			AccessTTL: tokens.Expiration(),
		}),
		BodyMetrics: bodymetricshandler.NewBodyMetricsHandler(bodyMetricsUC),
		Nutrition:   nutritionhandler.NewNutritionHandler(entryUC),
		Goals:       nutritionhandler.NewGoalsHandler(goalsUC),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "timezone", cfg.Location.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// setupLogger installs a JSON handler in production and a text handler otherwise.
func setupLogger(cfg *config.Config) {
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
