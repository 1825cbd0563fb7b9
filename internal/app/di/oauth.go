package di

import (
	"errors"
	"log/slog"

	"fitness_backend/internal/app/config"
	"fitness_backend/internal/feature/auth/usecase"
	platformhttp "fitness_backend/internal/platform/http"
	"fitness_backend/internal/platform/oauth"
)

// NewOAuthProvider returns the Google provider, or nil when no client
// credentials are configured (sign-in then answers 503).
func NewOAuthProvider(cfg *config.Config) usecase.OAuthProvider {
	p, err := oauth.NewGoogleProvider(oauth.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL(),
	}, platformhttp.NewHTTPClient(platformhttp.DefaultTimeout))
	if errors.Is(err, usecase.ErrOAuthNotConfigured) {
		slog.Warn("GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set; Google sign-in disabled")
		return nil
	}
	if err != nil {
		slog.Error("failed to configure Google sign-in", "error", err)
		return nil
	}
	return p
}
