package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"fitness_backend/internal/feature/auth/usecase"
)

// newFakeGoogle serves the token and userinfo endpoints.
func newFakeGoogle(t *testing.T, userInfoStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"scope":         "openid email profile",
			"id_token":      "id-token-1",
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if userInfoStatus != http.StatusOK {
			w.WriteHeader(userInfoStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"g-123","email":"Ann@Example.com","email_verified":true,"name":"Ann","picture":"https://img/ann.png"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T, srv *httptest.Server) *GoogleProvider {
	t.Helper()

	p, err := NewGoogleProvider(Config{ClientID: "cid", ClientSecret: "secret", RedirectURL: "http://localhost:8080/auth/google/callback"}, srv.Client())
	require.NoError(t, err)
	p.cfg.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestNewGoogleProvider_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := NewGoogleProvider(Config{ClientID: "cid"}, nil)

	assert.ErrorIs(t, err, usecase.ErrOAuthNotConfigured)
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	t.Parallel()

	p, err := NewGoogleProvider(Config{ClientID: "cid", ClientSecret: "secret", RedirectURL: "http://localhost:8080/auth/google/callback"}, nil)
	require.NoError(t, err)

	u, err := url.Parse(p.AuthCodeURL("state-xyz"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
}

func TestGoogleProvider_Exchange(t *testing.T) {
	t.Parallel()

	srv := newFakeGoogle(t, http.StatusOK)
	p := newTestProvider(t, srv)

	acct, err := p.Exchange(context.Background(), "good-code")

	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, acct.Provider)
	assert.Equal(t, "g-123", acct.ProviderAccountID)
	assert.Equal(t, "ann@example.com", acct.Email)
	assert.Equal(t, "Ann", acct.Name)
	assert.Equal(t, "https://img/ann.png", acct.Image)
	assert.Equal(t, "access-1", acct.AccessToken)
	assert.Equal(t, "refresh-1", acct.RefreshToken)
	assert.Equal(t, "Bearer", acct.TokenType)
	assert.Equal(t, "openid email profile", acct.Scope)
	assert.Equal(t, "id-token-1", acct.IDToken)
	assert.NotNil(t, acct.ExpiresAt)
}

func TestGoogleProvider_ExchangeErrors(t *testing.T) {
	t.Parallel()

	t.Run("bad code", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, newFakeGoogle(t, http.StatusOK))

		_, err := p.Exchange(context.Background(), "bad-code")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "google token exchange")
	})

	t.Run("userinfo failure", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, newFakeGoogle(t, http.StatusInternalServerError))

		_, err := p.Exchange(context.Background(), "good-code")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}
