// Package db opens the relational store shared by every repository.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// retryInterval is the pause between connection attempts.
	retryInterval = 3 * time.Second
	// connectTimeout bounds how long startup waits for the database.
	connectTimeout = 60 * time.Second
)

// Config holds connection settings read from the environment.
// URL wins over the discrete Host/Port fields; when neither is set the
// SQLite file at SQLitePath is used.
type Config struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	SQLitePath    string
	RunMigrations bool
}

// LoadConfigFromEnv reads the database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		URL:           os.Getenv("DATABASE_URL"),
		Host:          os.Getenv("DB_HOST"),
		Port:          getEnv("DB_PORT", "5432"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		SSLMode:       getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "./fitness.db"),
		RunMigrations: getEnv("RUN_MIGRATIONS", "true") == "true",
	}
}

// UsesPostgres reports whether the config points at a PostgreSQL server.
func (c Config) UsesPostgres() bool {
	return c.URL != "" || c.Host != ""
}

// BuildDSN returns the PostgreSQL DSN for cfg.
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener opens a gorm connection for a DSN. Tests substitute their own.
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres opens a PostgreSQL connection through the pgx driver.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// OpenSQLite opens (or creates) a SQLite database file.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), gormConfig())
}

// Timestamps are written in UTC so SQLite's text comparison orders them correctly.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("connect database after %s: %w", timeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// Open connects using cfg and configures the connection pool.
func Open(cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.UsesPostgres() {
		db, err = ConnectWithRetry(BuildDSN(cfg), connectTimeout, OpenPostgres)
	} else {
		slog.Info("DATABASE_URL not set, using sqlite", "path", cfg.SQLitePath)
		db, err = OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
