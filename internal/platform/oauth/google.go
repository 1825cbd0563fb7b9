// Package oauth implements the Google OAuth2 authorization code flow.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"fitness_backend/internal/feature/auth/domain/entity"
	"fitness_backend/internal/feature/auth/usecase"
	platformhttp "fitness_backend/internal/platform/http"
)

// ProviderGoogle is stored in accounts.provider.
const ProviderGoogle = "google"

const defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Config holds the OAuth client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleProvider exchanges authorization codes and fetches the signed-in profile.
type GoogleProvider struct {
	cfg         *oauth2.Config
	client      *http.Client
	userInfoURL string
}

var _ usecase.OAuthProvider = (*GoogleProvider)(nil)

// NewGoogleProvider returns usecase.ErrOAuthNotConfigured when the client id or secret is missing.
func NewGoogleProvider(cfg Config, client *http.Client) (*GoogleProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, usecase.ErrOAuthNotConfigured
	}
	if client == nil {
		client = platformhttp.NewHTTPClient(0)
	}
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
			RedirectURL:  cfg.RedirectURL,
		},
		client:      client,
		userInfoURL: defaultUserInfoURL,
	}, nil
}

// AuthCodeURL returns the consent page URL carrying state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

type userInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Exchange trades code for tokens and resolves the Google profile.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*entity.ExternalAccount, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	info, err := p.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch google user info: %w", err)
	}
	if info.Sub == "" {
		return nil, errors.New("google user info: missing sub")
	}

	acct := &entity.ExternalAccount{
		Provider:          ProviderGoogle,
		ProviderAccountID: info.Sub,
		Email:             strings.ToLower(info.Email),
		Name:              info.Name,
		Image:             info.Picture,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
		TokenType:         token.TokenType,
	}
	if !token.Expiry.IsZero() {
		exp := token.Expiry.Unix()
		acct.ExpiresAt = &exp
	}
	if scope, ok := token.Extra("scope").(string); ok {
		acct.Scope = scope
	}
	if idToken, ok := token.Extra("id_token").(string); ok {
		acct.IDToken = idToken
	}
	return acct, nil
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &info, nil
}
