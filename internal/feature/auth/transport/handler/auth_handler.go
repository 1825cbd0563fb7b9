// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fitness_backend/internal/api"
	"fitness_backend/internal/feature/auth/domain/entity"
	"fitness_backend/internal/feature/auth/transport/http/dto"
	"fitness_backend/internal/feature/auth/usecase"
	jwtmw "fitness_backend/internal/platform/jwt"
)

const (
	// RefreshCookie holds the opaque refresh session id. It is only sent to /auth.
	RefreshCookie = "refresh_token"
	// StateCookie holds the OAuth state between the redirect and the callback.
	StateCookie = "oauth_state"

	refreshCookiePath = "/auth"
	stateTTL          = 10 * time.Minute
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	SignInURL(state string) (string, error)
	CompleteSignIn(ctx context.Context, code string, client usecase.ClientInfo) (*usecase.Tokens, error)
	Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (*entity.User, error)
}

// CookieConfig controls the auth cookies.
type CookieConfig struct {
	// Secure sets the Secure attribute; enable behind HTTPS.
	Secure bool
	// AccessTTL is the lifetime of the session cookie and the access token.
	AccessTTL time.Duration
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth    AuthUsecase
	cookies CookieConfig
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// GoogleSignIn handles GET /auth/google.
// stateをCookieに保存してGoogleの同意画面へリダイレクトします。
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		api.WriteError(c, err, "Failed to start sign-in")
		return
	}

	target, err := h.auth.SignInURL(state)
	if errors.Is(err, usecase.ErrOAuthNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Google sign-in is not configured"})
		return
	}
	if err != nil {
		api.WriteError(c, err, "Failed to start sign-in")
		return
	}

	h.setCookie(c, StateCookie, state, stateTTL, refreshCookiePath)
	c.Redirect(http.StatusTemporaryRedirect, target)
}

// GoogleCallback handles GET /auth/google/callback.
// - stateが一致しない場合は400
// - サインイン失敗時はサインインページへ戻す（JSONクライアントには401）
// - 成功時はCookieを設定して/dashboardへリダイレクト
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		slog.Warn("oauth provider returned error", "error", providerErr, "remote_addr", c.ClientIP())
		h.signInFailed(c, providerErr)
		return
	}

	expected, _ := c.Cookie(StateCookie)
	h.clearCookie(c, StateCookie, refreshCookiePath)
	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		slog.Warn("oauth state mismatch", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid OAuth state"})
		return
	}

	tokens, err := h.auth.CompleteSignIn(c.Request.Context(), c.Query("code"), clientInfo(c))
	if err != nil {
		// 実際のエラーはクライアントに公開しない
		slog.Warn("sign-in failed", "error", err, "remote_addr", c.ClientIP())
		h.signInFailed(c, "signin_failed")
		return
	}

	slog.Info("user sign-in successful", "remote_addr", c.ClientIP())
	h.setAuthCookies(c, tokens)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.NewTokenRes(tokens, h.cookies.AccessTTL))
		return
	}
	c.Redirect(http.StatusFound, jwtmw.DashboardPath)
}

// Refresh handles POST /auth/refresh. The refresh token comes from the
// cookie or the JSON body; the presented session is rotated.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := refreshToken(c)
	if !ok {
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), token, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) ||
			errors.Is(err, usecase.ErrSessionRevoked) ||
			errors.Is(err, usecase.ErrSessionExpired) {
			slog.Warn("refresh rejected", "error", err, "remote_addr", c.ClientIP())
			h.clearAuthCookies(c)
			api.AbortUnauthorized(c)
			return
		}
		api.WriteError(c, err, "Failed to refresh session")
		return
	}

	h.setAuthCookies(c, tokens)
	c.JSON(http.StatusOK, dto.NewTokenRes(tokens, h.cookies.AccessTTL))
}

// Logout handles POST /auth/logout. It always clears the cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := refreshToken(c)
	if !ok {
		return
	}

	h.clearAuthCookies(c)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		api.WriteError(c, err, "Failed to sign out")
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), jwtmw.UserID(c))
	if errors.Is(err, usecase.ErrUserNotFound) {
		api.AbortUnauthorized(c)
		return
	}
	if err != nil {
		api.WriteError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

func (h *AuthHandler) signInFailed(c *gin.Context, reason string) {
	if wantsJSON(c) {
		api.AbortUnauthorized(c)
		return
	}
	c.Redirect(http.StatusFound, jwtmw.SignInPath+"?error="+url.QueryEscape(reason))
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, t *usecase.Tokens) {
	h.setCookie(c, jwtmw.SessionCookie, t.AccessToken, h.cookies.AccessTTL, "/")
	h.setCookie(c, RefreshCookie, t.RefreshToken, time.Until(t.RefreshExpiresAt), refreshCookiePath)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	h.clearCookie(c, jwtmw.SessionCookie, "/")
	h.clearCookie(c, RefreshCookie, refreshCookiePath)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration, path string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), path, "", h.cookies.Secure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name, path string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, path, "", h.cookies.Secure, true)
}

// refreshToken reads the cookie first, then an optional JSON body.
func refreshToken(c *gin.Context) (string, bool) {
	if v, err := c.Cookie(RefreshCookie); err == nil && v != "" {
		return v, true
	}
	if c.Request.ContentLength == 0 {
		return "", true
	}
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "body", err)
		return "", false
	}
	return req.RefreshToken, true
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
