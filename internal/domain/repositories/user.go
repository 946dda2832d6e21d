package repositories

import (
	"context"

	"sori/internal/domain/models"
)

// UserRepository defines data access operations for users and their
// linked provider accounts
type UserRepository interface {
	// Create inserts a user; a taken email yields a *domain.ConflictError
	Create(ctx context.Context, user *models.User) error

	// GetByID returns domain.ErrNotFound when the user does not exist
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns domain.ErrNotFound when no user has the email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByAccount finds the user linked to a provider identity
	GetByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error)

	// Update writes name, image and updated_at
	Update(ctx context.Context, user *models.User) error

	// UpsertAccount links an account, refreshing its provider tokens when
	// the (provider, provider account id) pair is already linked
	UpsertAccount(ctx context.Context, account *models.Account) error
}
