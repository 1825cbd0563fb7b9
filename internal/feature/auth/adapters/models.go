package adapters

import (
	"time"

	"fitness_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID            string     `gorm:"column:id;primaryKey;size:36"`
	Name          string     `gorm:"column:name;size:255"`
	Email         string     `gorm:"column:email;uniqueIndex;size:255;not null"`
	Image         string     `gorm:"column:image;size:1024"`
	EmailVerified *time.Time `gorm:"column:email_verified"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Image:         m.Image,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// AccountModel is the GORM model for the accounts table.
type AccountModel struct {
	ID                string `gorm:"column:id;primaryKey;size:36"`
	UserID            string `gorm:"column:user_id;size:36;index;not null"`
	Type              string `gorm:"column:type;size:32;not null"`
	Provider          string `gorm:"column:provider;size:64;not null;uniqueIndex:idx_accounts_provider_account"`
	ProviderAccountID string `gorm:"column:provider_account_id;size:255;not null;uniqueIndex:idx_accounts_provider_account"`
	AccessToken       string `gorm:"column:access_token;type:text"`
	RefreshToken      string `gorm:"column:refresh_token;type:text"`
	ExpiresAt         *int64 `gorm:"column:expires_at"`
	TokenType         string `gorm:"column:token_type;size:32"`
	Scope             string `gorm:"column:scope;size:512"`
	IDToken           string `gorm:"column:id_token;type:text"`

	User UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (AccountModel) TableName() string { return "accounts" }

func accountModelFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:                a.ID,
		UserID:            a.UserID,
		Type:              a.Type,
		Provider:          a.Provider,
		ProviderAccountID: a.ProviderAccountID,
		AccessToken:       a.AccessToken,
		RefreshToken:      a.RefreshToken,
		ExpiresAt:         a.ExpiresAt,
		TokenType:         a.TokenType,
		Scope:             a.Scope,
		IDToken:           a.IDToken,
	}
}

// SessionModel is the GORM model for the sessions table. It is only used
// when Redis is unavailable.
type SessionModel struct {
	ID        string     `gorm:"column:id;primaryKey;size:64"`
	UserID    string     `gorm:"column:user_id;size:36;index;not null"`
	UserAgent string     `gorm:"column:user_agent;size:512"`
	IPAddress string     `gorm:"column:ip_address;size:45"` // IPv6 max length
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	ExpiresAt time.Time  `gorm:"column:expires_at;index;not null"`
	RevokedAt *time.Time `gorm:"column:revoked_at;index"`
}

func (SessionModel) TableName() string { return "sessions" }

// ToEntity converts the GORM model to a domain entity.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
	}
}

func sessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
		RevokedAt: s.RevokedAt,
	}
}
