package services

import (
	"context"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/httputil"
)

// CreateWorkspaceRequest represents a workspace creation request
type CreateWorkspaceRequest struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// UpdateWorkspaceRequest represents a partial workspace update
type UpdateWorkspaceRequest struct {
	Name  *string                 `json:"name,omitempty"`
	Image httputil.OptionalString `json:"image"`
}

// WorkspaceService handles workspace business logic
type WorkspaceService interface {
	// ListWorkspaces returns a page of the user's workspaces in the shallow shape
	ListWorkspaces(ctx context.Context, userID string, page models.PageRequest) (models.Page[*models.WorkspaceContents], error)

	// GetWorkspace returns the workspace with its contents; detailed selects
	// the assembled tree over the shallow listing
	GetWorkspace(ctx context.Context, userID, workspaceID string, detailed bool) (domain.Result[*models.WorkspaceContents], error)

	CreateWorkspace(ctx context.Context, userID string, req *CreateWorkspaceRequest) (domain.Result[*models.Workspace], error)

	UpdateWorkspace(ctx context.Context, userID, workspaceID string, req *UpdateWorkspaceRequest) (domain.Result[*models.Workspace], error)

	DeleteWorkspace(ctx context.Context, userID, workspaceID string) (domain.Result[domain.Empty], error)
}
