package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"fitness_backend/internal/feature/auth/domain/entity"
)

const (
	// DefaultSessionTTL はリフレッシュセッションの有効期間です。
	DefaultSessionTTL = 30 * 24 * time.Hour
	// MaxSessionsPerUser を超えると最も古いセッションを削除します。
	MaxSessionsPerUser = 5
)

// TokenIssuer signs access tokens.
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

// OAuthProvider runs the authorization-code flow against an identity provider.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*entity.ExternalAccount, error)
}

// IdentityResolver maps a provider profile onto a local user id.
type IdentityResolver interface {
	ResolveOrCreateUser(ctx context.Context, ext entity.ExternalAccount) (string, error)
}

// ClientInfo identifies the client a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// Tokens is the result of a sign-in or refresh.
type Tokens struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	oauth      OAuthProvider
	identity   IdentityResolver
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenIssuer
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// oauth may be nil when no provider credentials are configured.
func NewAuthUsecase(oauth OAuthProvider, identity IdentityResolver, users UserRepository,
	sessions SessionRepository, tokens TokenIssuer, sessionTTL time.Duration) *authUsecase {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &authUsecase{
		oauth:      oauth,
		identity:   identity,
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// SignInURL returns the provider consent URL carrying state.
func (u *authUsecase) SignInURL(state string) (string, error) {
	if u.oauth == nil {
		return "", ErrOAuthNotConfigured
	}
	return u.oauth.AuthCodeURL(state), nil
}

// CompleteSignIn exchanges the authorization code, resolves the local user
// and opens a new session.
func (u *authUsecase) CompleteSignIn(ctx context.Context, code string, client ClientInfo) (*Tokens, error) {
	if u.oauth == nil {
		return nil, ErrOAuthNotConfigured
	}

	ext, err := u.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}

	userID, err := u.identity.ResolveOrCreateUser(ctx, *ext)
	if err != nil {
		return nil, err
	}

	return u.openSession(ctx, userID, ext.Email, client)
}

// Refresh rotates a refresh session: the presented one is revoked and a new
// one is issued alongside a fresh access token.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*Tokens, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	session, err := u.sessions.FindByID(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpiredAt(u.now()) {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}

	// Revoke succeeds for exactly one caller per session.
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		switch {
		case errors.Is(err, ErrSessionRevoked):
			return nil, ErrSessionRevoked
		case errors.Is(err, ErrSessionNotFound):
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	return u.openSession(ctx, user.ID, user.Email, client)
}

// Logout revokes the refresh session. Unknown tokens are ignored.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := u.sessions.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionRevoked) {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Me returns the signed-in user's profile.
func (u *authUsecase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

func (u *authUsecase) openSession(ctx context.Context, userID, email string, client ClientInfo) (*Tokens, error) {
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	for ; count >= MaxSessionsPerUser; count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return nil, fmt.Errorf("delete oldest session: %w", err)
		}
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	now := u.now()
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	access, err := u.tokens.GenerateToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &Tokens{
		AccessToken:      access,
		RefreshToken:     session.ID,
		RefreshExpiresAt: session.ExpiresAt,
	}, nil
}

// newSessionID returns 32 random bytes hex-encoded.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
