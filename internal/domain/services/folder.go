package services

import (
	"context"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/httputil"
)

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"` // nil for a root folder
}

// UpdateFolderRequest represents a rename and/or move
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parentId"` // null moves to root
}

// FolderService handles folder business logic
type FolderService interface {
	CreateFolder(ctx context.Context, userID, workspaceID string, req *CreateFolderRequest) (domain.Result[*models.Folder], error)

	UpdateFolder(ctx context.Context, userID, workspaceID, folderID string, req *UpdateFolderRequest) (domain.Result[*models.Folder], error)

	// DeleteFolder removes the folder, its subfolders and their notes
	DeleteFolder(ctx context.Context, userID, workspaceID, folderID string) (domain.Result[domain.Empty], error)
}
