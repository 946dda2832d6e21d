package services

import (
	"context"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/httputil"
)

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	Name     string  `json:"name"`
	FolderID *string `json:"folderId"` // nil leaves the note unfiled
}

// UpdateNoteRequest represents a rename and/or move
type UpdateNoteRequest struct {
	Name     *string                 `json:"name,omitempty"`
	FolderID httputil.OptionalString `json:"folderId"` // null unfiles the note
}

// NoteService handles note business logic
type NoteService interface {
	CreateNote(ctx context.Context, userID, workspaceID string, req *CreateNoteRequest) (domain.Result[*models.Note], error)

	UpdateNote(ctx context.Context, userID, workspaceID, noteID string, req *UpdateNoteRequest) (domain.Result[*models.Note], error)

	DeleteNote(ctx context.Context, userID, workspaceID, noteID string) (domain.Result[domain.Empty], error)
}
