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

// PostgresWorkspaceRepository implements the WorkspaceRepository interface
type PostgresWorkspaceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(config *RepositoryConfig) repositories.WorkspaceRepository {
	return &PostgresWorkspaceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const workspaceColumns = "id, user_id, name, image, created_at, updated_at"

func scanWorkspace(row pgx.Row) (*models.Workspace, error) {
	var w models.Workspace
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Image, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// conflict builds the conflict error for a taken name, looking up the
// existing workspace so callers can reference it
func (r *PostgresWorkspaceRepository) conflict(ctx context.Context, userID, name string) error {
	err := &domain.ConflictError{
		Message:      fmt.Sprintf("workspace '%s' already exists", name),
		ResourceType: "workspace",
	}
	// the failed statement aborted any surrounding transaction, so look up
	// through the pool
	if existing, lookupErr := r.getByName(ctx, r.pool, userID, name); lookupErr == nil {
		err.ResourceID = existing.ID
	}
	return err
}

// Create inserts a workspace
func (r *PostgresWorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		workspace.ID,
		workspace.UserID,
		workspace.Name,
		workspace.Image,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, workspace.UserID, workspace.Name)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", workspace.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace scoped to its owner
func (r *PostgresWorkspaceRepository) GetByID(ctx context.Context, id, userID string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, workspaceColumns, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.pool)
	workspace, err := scanWorkspace(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	return workspace, nil
}

// GetByName retrieves the owner's workspace with the given name
func (r *PostgresWorkspaceRepository) GetByName(ctx context.Context, userID, name string) (*models.Workspace, error) {
	return r.getByName(ctx, GetExecutor(ctx, r.pool), userID, name)
}

func (r *PostgresWorkspaceRepository) getByName(ctx context.Context, executor repositories.DBTX, userID, name string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND name = $2
	`, workspaceColumns, r.tables.Workspaces)

	workspace, err := scanWorkspace(executor.QueryRow(ctx, query, userID, name))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace '%s': %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace by name: %w", err)
	}

	return workspace, nil
}

// List retrieves one page of the owner's workspaces
func (r *PostgresWorkspaceRepository) List(ctx context.Context, userID string, page models.PageRequest) ([]models.Workspace, error) {
	cond, tail, args := keyset(r.tables.Workspaces, page, 2)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1%s
	`, workspaceColumns, r.tables.Workspaces, cond) + tail

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []models.Workspace{}
	for rows.Next() {
		workspace, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, *workspace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}

	return workspaces, nil
}

// Update writes name, image and updated_at
func (r *PostgresWorkspaceRepository) Update(ctx context.Context, workspace *models.Workspace) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, image = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		workspace.Name,
		workspace.Image,
		workspace.UpdatedAt,
		workspace.ID,
		workspace.UserID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, workspace.UserID, workspace.Name)
		}
		return fmt.Errorf("update workspace: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", workspace.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the workspace; folders and notes go with it through
// ON DELETE CASCADE
func (r *PostgresWorkspaceRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// TreeRows walks the folder forest with a recursive CTE and left-joins the
// notes of every folder. Unfiled notes are appended as rows without a
// folder and depth -1, so the whole workspace costs one round trip.
func (r *PostgresWorkspaceRepository) TreeRows(ctx context.Context, workspaceID string) ([]models.TreeRow, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE tree AS (
			SELECT id, name, parent_id, 0 AS depth
			FROM %[1]s
			WHERE workspace_id = $1 AND parent_id IS NULL
			UNION ALL
			SELECT f.id, f.name, f.parent_id, t.depth + 1
			FROM %[1]s f
			JOIN tree t ON f.parent_id = t.id
			WHERE f.workspace_id = $1
		)
		SELECT t.id::text, t.name, t.parent_id::text, t.depth, n.id::text, n.name
		FROM tree t
		LEFT JOIN %[2]s n ON n.folder_id = t.id
		UNION ALL
		SELECT '', '', NULL, -1, n.id::text, n.name
		FROM %[2]s n
		WHERE n.workspace_id = $1 AND n.folder_id IS NULL
		ORDER BY 4, 2, 1, 6, 5
	`, r.tables.Folders, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query workspace tree: %w", err)
	}
	defer rows.Close()

	var out []models.TreeRow
	for rows.Next() {
		var row models.TreeRow
		err := rows.Scan(
			&row.FolderID,
			&row.FolderName,
			&row.ParentID,
			&row.Depth,
			&row.NoteID,
			&row.NoteName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tree row: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tree rows: %w", err)
	}

	return out, nil
}
