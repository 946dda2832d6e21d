package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sori/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users      string
	Accounts   string
	Workspaces string
	Folders    string
	Notes      string
	Servers    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:      fmt.Sprintf("%susers", prefix),
		Accounts:   fmt.Sprintf("%saccounts", prefix),
		Workspaces: fmt.Sprintf("%sworkspaces", prefix),
		Folders:    fmt.Sprintf("%sfolders", prefix),
		Notes:      fmt.Sprintf("%snotes", prefix),
		Servers:    fmt.Sprintf("%sservers", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool and pings it.
//
// PgBouncer in transaction pooling mode (port 6543) does not support
// prepared statements, so that port switches to QueryExecModeCacheDescribe
// unless default_query_exec_mode is set in the connection string.
//
// Table prefixes are interpolated with fmt.Sprintf before the SQL reaches
// the server, so each environment gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		logger.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there
// is none. Repositories use it so they take part in ExecTx transactions.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}

// Repositories bundles every Postgres repository sharing one pool
type Repositories struct {
	Users      repositories.UserRepository
	Workspaces repositories.WorkspaceRepository
	Folders    repositories.FolderRepository
	Notes      repositories.NoteRepository
	Servers    repositories.ServerRepository
	TxManager  repositories.TransactionManager
}

// NewRepositories creates all repositories from config
func NewRepositories(config *RepositoryConfig) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(config),
		Workspaces: NewWorkspaceRepository(config),
		Folders:    NewFolderRepository(config),
		Notes:      NewNoteRepository(config),
		Servers:    NewServerRepository(config),
		TxManager:  NewTransactionManager(config.Pool, config.Logger),
	}
}
