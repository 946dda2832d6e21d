package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
	"sori/internal/domain/services"
	"sori/internal/service/tree"
)

type workspaceService struct {
	workspaceRepo repositories.WorkspaceRepository
	folderRepo    repositories.FolderRepository
	noteRepo      repositories.NoteRepository
	txManager     repositories.TransactionManager
	assembler     *tree.Assembler
	logger        *slog.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceRepo repositories.WorkspaceRepository,
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	assembler *tree.Assembler,
	logger *slog.Logger,
) services.WorkspaceService {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		folderRepo:    folderRepo,
		noteRepo:      noteRepo,
		txManager:     txManager,
		assembler:     assembler,
		logger:        logger,
	}
}

// ListWorkspaces returns one page of workspaces, each with its flat folders
// and notes. Contents of the whole page are fetched with two queries.
func (s *workspaceService) ListWorkspaces(ctx context.Context, userID string, page models.PageRequest) (models.Page[*models.WorkspaceContents], error) {
	workspaces, err := s.workspaceRepo.List(ctx, userID, page)
	if err != nil {
		return models.Page[*models.WorkspaceContents]{}, err
	}

	ids := make([]string, 0, len(workspaces))
	for _, w := range workspaces {
		ids = append(ids, w.ID)
	}
	contents, err := s.shallowContents(ctx, workspaces, ids)
	if err != nil {
		return models.Page[*models.WorkspaceContents]{}, err
	}

	return models.NewPage(contents, page.Limit, func(c *models.WorkspaceContents) string { return c.ID }), nil
}

func (s *workspaceService) shallowContents(ctx context.Context, workspaces []models.Workspace, ids []string) ([]*models.WorkspaceContents, error) {
	out := make([]*models.WorkspaceContents, 0, len(workspaces))
	if len(workspaces) == 0 {
		return out, nil
	}

	folders, err := s.folderRepo.ListByWorkspaces(ctx, ids)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByWorkspaces(ctx, ids)
	if err != nil {
		return nil, err
	}

	foldersByWorkspace := make(map[string][]models.Folder)
	for _, f := range folders {
		foldersByWorkspace[f.WorkspaceID] = append(foldersByWorkspace[f.WorkspaceID], f)
	}
	notesByWorkspace := make(map[string][]models.NoteNode)
	for _, n := range notes {
		notesByWorkspace[n.WorkspaceID] = append(notesByWorkspace[n.WorkspaceID], models.NoteNode{ID: n.ID, Name: n.Name})
	}

	for _, w := range workspaces {
		wsNotes := notesByWorkspace[w.ID]
		if wsNotes == nil {
			wsNotes = []models.NoteNode{}
		}
		out = append(out, &models.WorkspaceContents{
			Workspace: w,
			Folders:   tree.FlatFolders(foldersByWorkspace[w.ID]),
			Notes:     wsNotes,
		})
	}
	return out, nil
}

// GetWorkspace returns the workspace with its contents. Missing and foreign
// workspaces are both NotFound. The detailed shape costs one tree query
// regardless of depth.
func (s *workspaceService) GetWorkspace(ctx context.Context, userID, workspaceID string, detailed bool) (domain.Result[*models.WorkspaceContents], error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound[*models.WorkspaceContents](), nil
		}
		return domain.Result[*models.WorkspaceContents]{}, err
	}

	if !detailed {
		contents, err := s.shallowContents(ctx, []models.Workspace{*workspace}, []string{workspace.ID})
		if err != nil {
			return domain.Result[*models.WorkspaceContents]{}, err
		}
		return domain.Ok(contents[0]), nil
	}

	rows, err := s.workspaceRepo.TreeRows(ctx, workspace.ID)
	if err != nil {
		return domain.Result[*models.WorkspaceContents]{}, err
	}
	assembled := s.assembler.Assemble(rows)

	s.logger.Debug("workspace tree built",
		"workspace_id", workspace.ID,
		"rows", len(rows),
		"root_folders", len(assembled.Folders),
		"notes", len(assembled.Notes),
	)

	return domain.Ok(&models.WorkspaceContents{
		Workspace: *workspace,
		Folders:   assembled.Folders,
		Notes:     assembled.Notes,
	}), nil
}

// CreateWorkspace creates a workspace whose name is unique for the owner
func (s *workspaceService) CreateWorkspace(ctx context.Context, userID string, req *services.CreateWorkspaceRequest) (domain.Result[*models.Workspace], error) {
	if err := domain.NewValidationError(s.validateCreateRequest(req)); err != nil {
		return domain.Result[*models.Workspace]{}, err
	}

	workspace := &models.Workspace{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Image:     req.Image,
		CreatedAt: time.Now(),
	}

	var result domain.Result[*models.Workspace]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.workspaceRepo.GetByName(txCtx, userID, req.Name); err == nil {
			result = domain.AlreadyExists[*models.Workspace]()
			return nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := s.workspaceRepo.Create(txCtx, workspace); err != nil {
			return err
		}
		result = domain.Ok(workspace)
		return nil
	})
	if err != nil {
		// a concurrent create won the unique constraint
		if errors.Is(err, domain.ErrConflict) {
			return domain.AlreadyExists[*models.Workspace](), nil
		}
		return domain.Result[*models.Workspace]{}, err
	}

	if result.IsOK() {
		s.logger.Info("workspace created", "id", workspace.ID, "name", workspace.Name, "user_id", userID)
	}
	return result, nil
}

// UpdateWorkspace renames the workspace or changes its image
func (s *workspaceService) UpdateWorkspace(ctx context.Context, userID, workspaceID string, req *services.UpdateWorkspaceRequest) (domain.Result[*models.Workspace], error) {
	if err := domain.NewValidationError(s.validateUpdateRequest(req)); err != nil {
		return domain.Result[*models.Workspace]{}, err
	}

	var result domain.Result[*models.Workspace]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		workspace, err := s.workspaceRepo.GetByID(txCtx, workspaceID, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[*models.Workspace]()
				return nil
			}
			return err
		}

		if req.Name != nil && *req.Name != workspace.Name {
			if _, err := s.workspaceRepo.GetByName(txCtx, userID, *req.Name); err == nil {
				result = domain.AlreadyExists[*models.Workspace]()
				return nil
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			workspace.Name = *req.Name
		}
		req.Image.Apply(&workspace.Image)

		now := time.Now()
		workspace.UpdatedAt = &now
		if err := s.workspaceRepo.Update(txCtx, workspace); err != nil {
			return err
		}
		result = domain.Ok(workspace)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.AlreadyExists[*models.Workspace](), nil
		}
		return domain.Result[*models.Workspace]{}, err
	}

	if result.IsOK() {
		s.logger.Info("workspace updated", "id", workspaceID, "user_id", userID)
	}
	return result, nil
}

// DeleteWorkspace removes the workspace with all of its folders and notes
func (s *workspaceService) DeleteWorkspace(ctx context.Context, userID, workspaceID string) (domain.Result[domain.Empty], error) {
	var result domain.Result[domain.Empty]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.workspaceRepo.GetByID(txCtx, workspaceID, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[domain.Empty]()
				return nil
			}
			return err
		}
		if err := s.workspaceRepo.Delete(txCtx, workspaceID, userID); err != nil {
			return fmt.Errorf("delete workspace: %w", err)
		}
		result = domain.Ok(domain.Empty{})
		return nil
	})
	if err != nil {
		return domain.Result[domain.Empty]{}, err
	}

	if result.IsOK() {
		s.logger.Info("workspace deleted", "id", workspaceID, "user_id", userID)
	}
	return result, nil
}

// validateCreateRequest validates a create workspace request
func (s *workspaceService) validateCreateRequest(req *services.CreateWorkspaceRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.Image, imageRules...),
	)
}

// validateUpdateRequest validates an update workspace request
func (s *workspaceService) validateUpdateRequest(req *services.UpdateWorkspaceRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, optionalNameRules...),
		validation.Field(&req.Image, present(imageRules...)),
	)
}
