// Package config loads process-wide settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve in minimal containers
)

const envProduction = "production"

// ErrMissingAuthSecret is returned when AUTH_SECRET is unset in production.
var ErrMissingAuthSecret = errors.New("AUTH_SECRET must be set in production")

// devAuthSecret signs tokens outside production when AUTH_SECRET is unset.
const devAuthSecret = "dev-insecure-auth-secret"

// Config holds application settings. Database and Redis settings live in
// their own platform packages.
type Config struct {
	Port      string
	Env       string
	Location  *time.Location
	PublicURL string
	WebDir    string

	CORSOrigins []string

	AuthSecret         string
	GoogleClientID     string
	GoogleClientSecret string

	OTLPEndpoint string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("APP_ENV", "development"),
		PublicURL:          strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		WebDir:             os.Getenv("WEB_DIR"),
		CORSOrigins:        splitList(os.Getenv("CORS_ORIGINS")),
		AuthSecret:         os.Getenv("AUTH_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.AuthSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingAuthSecret
		}
		cfg.AuthSecret = devAuthSecret
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.PublicURL}
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == envProduction
}

// GoogleRedirectURL is the OAuth callback registered with Google.
func (c *Config) GoogleRedirectURL() string {
	return c.PublicURL + "/auth/google/callback"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
