package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitness_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a func-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *entity.User) error
	FindByEmailFunc   func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc      func(ctx context.Context, id string) (*entity.User, error)
	UpdateProfileFunc func(ctx context.Context, id, name, image string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id, name, image string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, name, image)
	}
	return nil
}

// mockAccountRepository records upserted accounts.
type mockAccountRepository struct {
	UpsertFunc func(ctx context.Context, account *entity.Account) error
	upserted   []*entity.Account
}

func (m *mockAccountRepository) Upsert(ctx context.Context, account *entity.Account) error {
	m.upserted = append(m.upserted, account)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, account)
	}
	return nil
}

// mockTokenIssuer returns "access-<userID>".
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID, email string) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "access-" + userID, nil
}

// mockOAuthProvider is a func-field mock of OAuthProvider.
type mockOAuthProvider struct {
	ExchangeFunc func(ctx context.Context, code string) (*entity.ExternalAccount, error)
}

func (m *mockOAuthProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (m *mockOAuthProvider) Exchange(ctx context.Context, code string) (*entity.ExternalAccount, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &entity.ExternalAccount{
		Provider:          "google",
		ProviderAccountID: "g-1",
		Email:             "alice@example.com",
		Name:              "Alice",
	}, nil
}

// mockIdentityResolver is a func-field mock of IdentityResolver.
type mockIdentityResolver struct {
	ResolveFunc func(ctx context.Context, ext entity.ExternalAccount) (string, error)
}

func (m *mockIdentityResolver) ResolveOrCreateUser(ctx context.Context, ext entity.ExternalAccount) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ext)
	}
	return "user-1", nil
}

// memorySessions is an in-memory SessionRepository.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*entity.Session{}}
}

func (m *memorySessions) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memorySessions) FindByID(_ context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memorySessions) Revoke(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.IsRevoked() {
		return ErrSessionRevoked
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (m *memorySessions) active(userID string) []*entity.Session {
	var out []*entity.Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsValid() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memorySessions) CountByUserID(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.active(userID))), nil
}

func (m *memorySessions) DeleteOldestByUserID(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if active := m.active(userID); len(active) > 0 {
		delete(m.sessions, active[0].ID)
	}
	return nil
}
