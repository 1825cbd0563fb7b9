// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"fitness_backend/internal/feature/auth/domain/entity"
	"fitness_backend/internal/feature/auth/usecase"
)

// RefreshReq is the optional body of /auth/refresh and /auth/logout.
// Browser clients send the refresh_token cookie instead.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenRes is returned to API clients after sign-in or refresh.
type TokenRes struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int64     `json:"expires_in"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewTokenRes builds the response; accessTTL is reported in seconds.
func NewTokenRes(t *usecase.Tokens, accessTTL time.Duration) TokenRes {
	return TokenRes{
		AccessToken:      t.AccessToken,
		RefreshToken:     t.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(accessTTL.Seconds()),
		RefreshExpiresAt: t.RefreshExpiresAt.UTC(),
	}
}

// UserRes is the profile returned by /api/me.
type UserRes struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Image         string     `json:"image"`
	EmailVerified *time.Time `json:"email_verified"`
}

func FromUser(u *entity.User) UserRes {
	return UserRes{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Image:         u.Image,
		EmailVerified: u.EmailVerified,
	}
}
