package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitness_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
type UserRepository interface {
	// Create returns ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// UpdateProfile refreshes the display name and avatar.
	UpdateProfile(ctx context.Context, id, name, image string) error
}

// AccountRepository persists provider account links.
type AccountRepository interface {
	// Upsert inserts the account or refreshes its tokens, keyed on
	// (provider, provider_account_id).
	Upsert(ctx context.Context, account *entity.Account) error
}

// IdentityProvider maps a provider profile onto a local user.
type IdentityProvider struct {
	users    UserRepository
	accounts AccountRepository
	now      func() time.Time
}

// NewIdentityProvider creates an IdentityProvider.
func NewIdentityProvider(users UserRepository, accounts AccountRepository) *IdentityProvider {
	return &IdentityProvider{users: users, accounts: accounts, now: time.Now}
}

// ResolveOrCreateUser returns the id of the user owning ext.Email, creating
// the user on first sign-in. The provider account link is upserted every time.
func (p *IdentityProvider) ResolveOrCreateUser(ctx context.Context, ext entity.ExternalAccount) (string, error) {
	email := strings.ToLower(strings.TrimSpace(ext.Email))
	if email == "" || ext.Provider == "" || ext.ProviderAccountID == "" {
		return "", ErrIncompleteIdentity
	}

	user, err := p.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		user, err = p.createUser(ctx, email, ext)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", fmt.Errorf("find user: %w", err)
	default:
		if profileChanged(user, ext) {
			if err := p.users.UpdateProfile(ctx, user.ID, ext.Name, ext.Image); err != nil {
				return "", fmt.Errorf("update profile: %w", err)
			}
		}
	}

	account := &entity.Account{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		Type:              "oauth",
		Provider:          ext.Provider,
		ProviderAccountID: ext.ProviderAccountID,
		AccessToken:       ext.AccessToken,
		RefreshToken:      ext.RefreshToken,
		ExpiresAt:         ext.ExpiresAt,
		TokenType:         ext.TokenType,
		Scope:             ext.Scope,
		IDToken:           ext.IDToken,
	}
	if err := p.accounts.Upsert(ctx, account); err != nil {
		return "", fmt.Errorf("upsert account: %w", err)
	}

	return user.ID, nil
}

func (p *IdentityProvider) createUser(ctx context.Context, email string, ext entity.ExternalAccount) (*entity.User, error) {
	verified := p.now()
	user := &entity.User{
		ID:            uuid.NewString(),
		Name:          ext.Name,
		Email:         email,
		Image:         ext.Image,
		EmailVerified: &verified,
	}
	err := p.users.Create(ctx, user)
	if errors.Is(err, ErrEmailAlreadyExists) {
		// 同時サインインで先に作成された
		return p.users.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Empty provider values never blank out a stored profile.
func profileChanged(u *entity.User, ext entity.ExternalAccount) bool {
	return (ext.Name != "" && ext.Name != u.Name) || (ext.Image != "" && ext.Image != u.Image)
}
