package auth

import (
	"context"
	"errors"
	"fmt"

	"sori/internal/domain"
	"sori/internal/domain/repositories"
	"sori/internal/domain/services"
)

// OwnerPermissionChecker implements services.PermissionChecker using
// ownership: a user can access a folder or note if they own the workspace
// that contains it.
type OwnerPermissionChecker struct {
	workspaceRepo repositories.WorkspaceRepository
	folderRepo    repositories.FolderRepository
	noteRepo      repositories.NoteRepository
}

// NewPermissionChecker creates a new ownership-based permission checker
func NewPermissionChecker(
	workspaceRepo repositories.WorkspaceRepository,
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
) services.PermissionChecker {
	return &OwnerPermissionChecker{
		workspaceRepo: workspaceRepo,
		folderRepo:    folderRepo,
		noteRepo:      noteRepo,
	}
}

// CanAccessWorkspace checks if user owns the workspace
func (c *OwnerPermissionChecker) CanAccessWorkspace(ctx context.Context, userID, workspaceID string) (bool, error) {
	// GetByID filters by owner, so a foreign workspace is also not found
	_, err := c.workspaceRepo.GetByID(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check workspace access: %w", err)
	}
	return true, nil
}

// CanAccessFolder checks workspace ownership and folder membership
func (c *OwnerPermissionChecker) CanAccessFolder(ctx context.Context, userID, workspaceID, folderID string) (bool, error) {
	ok, err := c.CanAccessWorkspace(ctx, userID, workspaceID)
	if err != nil || !ok {
		return false, err
	}

	exists, err := c.folderRepo.ExistsInWorkspace(ctx, folderID, workspaceID)
	if err != nil {
		return false, fmt.Errorf("check folder access: %w", err)
	}
	return exists, nil
}

// CanPlaceInFolder checks a placement target, nil being the workspace root
func (c *OwnerPermissionChecker) CanPlaceInFolder(ctx context.Context, userID, workspaceID string, folderID *string) (bool, error) {
	if folderID == nil {
		return c.CanAccessWorkspace(ctx, userID, workspaceID)
	}
	return c.CanAccessFolder(ctx, userID, workspaceID, *folderID)
}

// CanAccessNote checks workspace ownership and note membership
func (c *OwnerPermissionChecker) CanAccessNote(ctx context.Context, userID, workspaceID, noteID string) (bool, error) {
	ok, err := c.CanAccessWorkspace(ctx, userID, workspaceID)
	if err != nil || !ok {
		return false, err
	}

	exists, err := c.noteRepo.ExistsInWorkspace(ctx, noteID, workspaceID)
	if err != nil {
		return false, fmt.Errorf("check note access: %w", err)
	}
	return exists, nil
}
