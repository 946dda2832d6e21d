package repositories

import (
	"context"

	"sori/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID regardless of workspace
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// ExistsInWorkspace reports whether the folder belongs to the workspace
	ExistsInWorkspace(ctx context.Context, id, workspaceID string) (bool, error)

	// IsDescendant reports whether candidateID lies in the subtree below ancestorID
	IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error)

	// ListByWorkspaces lists every folder of the given workspaces
	ListByWorkspaces(ctx context.Context, workspaceIDs []string) ([]models.Folder, error)

	// Update writes name, parent and updated_at
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes the folder with its subtree and the notes placed in it
	Delete(ctx context.Context, id string) error
}
