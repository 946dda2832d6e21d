package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, name, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Image,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user with email '%s' already exists", user.Email),
				ResourceType: "user",
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where string, args ...any) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.name, u.image, u.created_at, u.updated_at
		FROM %s u
		%s
	`, r.tables.Users, where)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Image,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.getOne(ctx, "WHERE u.id = $1", id)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.getOne(ctx, "WHERE u.email = $1", email)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetByAccount retrieves the user linked to a provider identity
func (r *PostgresUserRepository) GetByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error) {
	where := fmt.Sprintf(`
		JOIN %s a ON a.user_id = u.id
		WHERE a.provider = $1 AND a.provider_account_id = $2
	`, r.tables.Accounts)

	user, err := r.getOne(ctx, where, provider, providerAccountID)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%s account %s: %w", provider, providerAccountID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by account: %w", err)
	}
	return user, nil
}

// Update writes name, image and updated_at
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, image = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, user.Name, user.Image, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}

	return nil
}

// UpsertAccount links an account or refreshes the provider tokens of an
// already linked one
func (r *PostgresUserRepository) UpsertAccount(ctx context.Context, account *models.Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, provider, provider_account_id, access_token, refresh_token, expires_at, scope)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (provider, provider_account_id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			scope = EXCLUDED.scope
		RETURNING id, user_id
	`, r.tables.Accounts)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		account.ID,
		account.UserID,
		account.Provider,
		account.ProviderAccountID,
		account.AccessToken,
		account.RefreshToken,
		account.ExpiresAt,
		account.Scope,
	).Scan(&account.ID, &account.UserID)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", account.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("upsert account: %w", err)
	}

	return nil
}
