package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
)

// PostgresServerRepository implements the ServerRepository interface
type PostgresServerRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewServerRepository creates a new server repository
func NewServerRepository(config *RepositoryConfig) repositories.ServerRepository {
	return &PostgresServerRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const serverColumns = "id, user_id, name, url, created_at, updated_at"

func scanServer(row pgx.Row) (*models.Server, error) {
	var s models.Server
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.URL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a server
func (r *PostgresServerRepository) Create(ctx context.Context, server *models.Server) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Servers)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		server.ID,
		server.UserID,
		server.Name,
		server.URL,
		server.CreatedAt,
		server.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("server '%s' already exists", server.Name),
				ResourceType: "server",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", server.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create server: %w", err)
	}

	return nil
}

// GetByID retrieves a server by ID regardless of owner
func (r *PostgresServerRepository) GetByID(ctx context.Context, id string) (*models.Server, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, serverColumns, r.tables.Servers)

	executor := GetExecutor(ctx, r.pool)
	server, err := scanServer(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("server %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get server: %w", err)
	}

	return server, nil
}

// GetByName retrieves the owner's server with the given name
func (r *PostgresServerRepository) GetByName(ctx context.Context, userID, name string) (*models.Server, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND name = $2
	`, serverColumns, r.tables.Servers)

	executor := GetExecutor(ctx, r.pool)
	server, err := scanServer(executor.QueryRow(ctx, query, userID, name))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("server '%s': %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get server by name: %w", err)
	}

	return server, nil
}

// List retrieves one page of the owner's servers
func (r *PostgresServerRepository) List(ctx context.Context, userID string, page models.PageRequest) ([]models.Server, error) {
	cond, tail, args := keyset(r.tables.Servers, page, 2)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1%s
	`, serverColumns, r.tables.Servers, cond) + tail

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	defer rows.Close()

	servers := []models.Server{}
	for rows.Next() {
		server, err := scanServer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan server: %w", err)
		}
		servers = append(servers, *server)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate servers: %w", err)
	}

	return servers, nil
}

// Update writes url and updated_at
func (r *PostgresServerRepository) Update(ctx context.Context, server *models.Server) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET url = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Servers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, server.URL, server.UpdatedAt, server.ID)
	if err != nil {
		return fmt.Errorf("update server: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("server %s: %w", server.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the server
func (r *PostgresServerRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Servers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete server: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("server %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
