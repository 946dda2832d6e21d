package repositories

import (
	"context"

	"sori/internal/domain/models"
)

// NoteRepository defines data access operations for notes
type NoteRepository interface {
	// Create inserts a note
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note by ID regardless of workspace
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// ExistsInWorkspace reports whether the note belongs to the workspace
	ExistsInWorkspace(ctx context.Context, id, workspaceID string) (bool, error)

	// ListByWorkspaces lists every note of the given workspaces
	ListByWorkspaces(ctx context.Context, workspaceIDs []string) ([]models.Note, error)

	// Update writes name, folder and updated_at
	Update(ctx context.Context, note *models.Note) error

	// Delete removes the note
	Delete(ctx context.Context, id string) error
}
