package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitness_backend/internal/feature/auth/domain/entity"
	"fitness_backend/internal/feature/auth/usecase"
)

type accountPostgres struct {
	db *gorm.DB
}

var _ usecase.AccountRepository = (*accountPostgres)(nil)

// NewAccountPostgres creates the accounts repository.
func NewAccountPostgres(db *gorm.DB) *accountPostgres {
	return &accountPostgres{db: db}
}

// Upsert inserts the account or refreshes its tokens when the
// (provider, provider_account_id) pair already exists.
func (r *accountPostgres) Upsert(ctx context.Context, a *entity.Account) error {
	m := accountModelFromEntity(a)
	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}, {Name: "provider_account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "access_token", "refresh_token", "expires_at", "token_type", "scope", "id_token",
			}),
		}).
		Create(m).Error
}
