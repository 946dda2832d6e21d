package repositories

import (
	"context"

	"sori/internal/domain/models"
)

// WorkspaceRepository defines data access operations for workspaces
type WorkspaceRepository interface {
	// Create inserts a workspace; a name taken by the same owner yields a
	// *domain.ConflictError
	Create(ctx context.Context, workspace *models.Workspace) error

	// GetByID retrieves a workspace scoped to its owner. Missing and foreign
	// workspaces both return domain.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Workspace, error)

	// GetByName retrieves the owner's workspace with the given name
	GetByName(ctx context.Context, userID, name string) (*models.Workspace, error)

	// List returns one page of the owner's workspaces
	List(ctx context.Context, userID string, page models.PageRequest) ([]models.Workspace, error)

	// Update writes name, image and updated_at
	Update(ctx context.Context, workspace *models.Workspace) error

	// Delete removes the workspace with its folders and notes
	Delete(ctx context.Context, id, userID string) error

	// TreeRows returns the flat folder/note rows of the workspace in one
	// round trip, ordered by depth, folder name, folder id, note name, note id
	TreeRows(ctx context.Context, workspaceID string) ([]models.TreeRow, error)
}
