package memory

import (
	"context"
	"fmt"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

// UserRepository implements repositories.UserRepository
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.run(ctx, func(d *dataset) error {
		for _, u := range d.users {
			if u.Email == user.Email {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("user with email '%s' already exists", user.Email),
					ResourceType: "user",
					ResourceID:   u.ID,
				}
			}
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.store.run(ctx, func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := r.store.run(ctx, func(d *dataset) error {
		for _, u := range d.users {
			if u.Email == email {
				user = &u
				return nil
			}
		}
		return fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
	})
	return user, err
}

func (r *UserRepository) GetByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error) {
	var user *models.User
	err := r.store.run(ctx, func(d *dataset) error {
		for _, a := range d.accounts {
			if a.Provider != provider || a.ProviderAccountID != providerAccountID {
				continue
			}
			if u, ok := d.users[a.UserID]; ok {
				user = &u
				return nil
			}
		}
		return fmt.Errorf("%s account %s: %w", provider, providerAccountID, domain.ErrNotFound)
	})
	return user, err
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.store.run(ctx, func(d *dataset) error {
		existing, ok := d.users[user.ID]
		if !ok {
			return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
		}
		existing.Name = user.Name
		existing.Image = user.Image
		existing.UpdatedAt = user.UpdatedAt
		d.users[user.ID] = existing
		return nil
	})
}

func (r *UserRepository) UpsertAccount(ctx context.Context, account *models.Account) error {
	return r.store.run(ctx, func(d *dataset) error {
		if _, ok := d.users[account.UserID]; !ok {
			return fmt.Errorf("user %s: %w", account.UserID, domain.ErrNotFound)
		}
		for id, a := range d.accounts {
			if a.Provider == account.Provider && a.ProviderAccountID == account.ProviderAccountID {
				a.AccessToken = account.AccessToken
				a.RefreshToken = account.RefreshToken
				a.ExpiresAt = account.ExpiresAt
				a.Scope = account.Scope
				d.accounts[id] = a
				account.ID = a.ID
				account.UserID = a.UserID
				return nil
			}
		}
		d.accounts[account.ID] = *account
		return nil
	})
}
