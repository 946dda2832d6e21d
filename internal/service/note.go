package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
	"sori/internal/domain/services"
)

type noteService struct {
	noteRepo    repositories.NoteRepository
	txManager   repositories.TransactionManager
	permissions services.PermissionChecker
	logger      *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	permissions services.PermissionChecker,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		txManager:   txManager,
		permissions: permissions,
		logger:      logger,
	}
}

// CreateNote creates a note in the workspace, optionally placed in a folder
// of the same workspace
func (s *noteService) CreateNote(ctx context.Context, userID, workspaceID string, req *services.CreateNoteRequest) (domain.Result[*models.Note], error) {
	if err := domain.NewValidationError(s.validateCreateRequest(req)); err != nil {
		return domain.Result[*models.Note]{}, err
	}

	note := &models.Note{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		FolderID:    req.FolderID,
		Name:        req.Name,
		CreatedAt:   time.Now(),
	}

	var result domain.Result[*models.Note]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		ok, err := s.permissions.CanPlaceInFolder(txCtx, userID, workspaceID, req.FolderID)
		if err != nil {
			return err
		}
		if !ok {
			result = domain.NoPermission[*models.Note]()
			return nil
		}

		if err := s.noteRepo.Create(txCtx, note); err != nil {
			return err
		}
		result = domain.Ok(note)
		return nil
	})
	if err != nil {
		return domain.Result[*models.Note]{}, err
	}

	if result.IsOK() {
		s.logger.Info("note created",
			"id", note.ID,
			"name", note.Name,
			"workspace_id", workspaceID,
			"folder_id", note.FolderID,
		)
	}
	return result, nil
}

// UpdateNote renames a note or moves it between folders of its workspace.
// The workspace of a note never changes.
func (s *noteService) UpdateNote(ctx context.Context, userID, workspaceID, noteID string, req *services.UpdateNoteRequest) (domain.Result[*models.Note], error) {
	if err := domain.NewValidationError(s.validateUpdateRequest(req)); err != nil {
		return domain.Result[*models.Note]{}, err
	}

	var result domain.Result[*models.Note]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		note, err := s.noteRepo.GetByID(txCtx, noteID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[*models.Note]()
				return nil
			}
			return err
		}

		ok, err := s.permissions.CanAccessNote(txCtx, userID, workspaceID, noteID)
		if err != nil {
			return err
		}
		if !ok {
			result = domain.NoPermission[*models.Note]()
			return nil
		}

		if req.FolderID.Present && req.FolderID.Value != nil {
			ok, err := s.permissions.CanAccessFolder(txCtx, userID, workspaceID, *req.FolderID.Value)
			if err != nil {
				return err
			}
			if !ok {
				result = domain.NoPermission[*models.Note]()
				return nil
			}
		}

		if req.Name != nil {
			note.Name = *req.Name
		}
		req.FolderID.Apply(&note.FolderID)

		now := time.Now()
		note.UpdatedAt = &now
		if err := s.noteRepo.Update(txCtx, note); err != nil {
			return err
		}
		result = domain.Ok(note)
		return nil
	})
	if err != nil {
		return domain.Result[*models.Note]{}, err
	}

	if result.IsOK() {
		s.logger.Info("note updated", "id", noteID, "workspace_id", workspaceID)
	}
	return result, nil
}

// DeleteNote removes a note
func (s *noteService) DeleteNote(ctx context.Context, userID, workspaceID, noteID string) (domain.Result[domain.Empty], error) {
	var result domain.Result[domain.Empty]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.noteRepo.GetByID(txCtx, noteID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[domain.Empty]()
				return nil
			}
			return err
		}

		ok, err := s.permissions.CanAccessNote(txCtx, userID, workspaceID, noteID)
		if err != nil {
			return err
		}
		if !ok {
			result = domain.NoPermission[domain.Empty]()
			return nil
		}

		if err := s.noteRepo.Delete(txCtx, noteID); err != nil {
			return err
		}
		result = domain.Ok(domain.Empty{})
		return nil
	})
	if err != nil {
		return domain.Result[domain.Empty]{}, err
	}

	if result.IsOK() {
		s.logger.Info("note deleted", "id", noteID, "workspace_id", workspaceID)
	}
	return result, nil
}

func (s *noteService) validateCreateRequest(req *services.CreateNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.FolderID, idRules...),
	)
}

func (s *noteService) validateUpdateRequest(req *services.UpdateNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, optionalNameRules...),
		validation.Field(&req.FolderID, present(idRules...)),
	)
}
