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

// errFolderCycle is reported under parentId when a move would make a folder
// its own ancestor
var errFolderCycle = errors.New("cannot move a folder into itself or one of its subfolders")

type folderService struct {
	folderRepo  repositories.FolderRepository
	txManager   repositories.TransactionManager
	permissions services.PermissionChecker
	logger      *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	permissions services.PermissionChecker,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo:  folderRepo,
		txManager:   txManager,
		permissions: permissions,
		logger:      logger,
	}
}

// CreateFolder creates a folder in the workspace root or under a parent of
// the same workspace. Folder names need not be unique.
func (s *folderService) CreateFolder(ctx context.Context, userID, workspaceID string, req *services.CreateFolderRequest) (domain.Result[*models.Folder], error) {
	if err := domain.NewValidationError(s.validateCreateRequest(req)); err != nil {
		return domain.Result[*models.Folder]{}, err
	}

	folder := &models.Folder{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		CreatedAt:   time.Now(),
	}

	var result domain.Result[*models.Folder]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		ok, err := s.permissions.CanAccessWorkspace(txCtx, userID, workspaceID)
		if err != nil {
			return err
		}
		if !ok {
			result = domain.NoPermission[*models.Folder]()
			return nil
		}

		if req.ParentID != nil {
			exists, err := s.folderRepo.ExistsInWorkspace(txCtx, *req.ParentID, workspaceID)
			if err != nil {
				return err
			}
			if !exists {
				result = domain.NotFound[*models.Folder]()
				return nil
			}
		}

		if err := s.folderRepo.Create(txCtx, folder); err != nil {
			return err
		}
		result = domain.Ok(folder)
		return nil
	})
	if err != nil {
		return domain.Result[*models.Folder]{}, err
	}

	switch result.Outcome {
	case domain.OutcomeOK:
		s.logger.Info("folder created",
			"id", folder.ID,
			"name", folder.Name,
			"workspace_id", workspaceID,
			"parent_id", folder.ParentID,
		)
	case domain.OutcomeNoPermission:
		s.logger.Debug("folder create denied", "workspace_id", workspaceID, "user_id", userID)
	}
	return result, nil
}

// UpdateFolder renames and/or moves a folder. The folder is looked up before
// permissions are checked, so a missing folder is NotFound for anyone.
func (s *folderService) UpdateFolder(ctx context.Context, userID, workspaceID, folderID string, req *services.UpdateFolderRequest) (domain.Result[*models.Folder], error) {
	if err := domain.NewValidationError(s.validateUpdateRequest(req)); err != nil {
		return domain.Result[*models.Folder]{}, err
	}

	var result domain.Result[*models.Folder]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[*models.Folder]()
				return nil
			}
			return err
		}

		ok, err := s.permissions.CanAccessFolder(txCtx, userID, workspaceID, folderID)
		if err != nil {
			return err
		}
		if !ok {
			result = domain.NoPermission[*models.Folder]()
			return nil
		}

		if req.Name != nil {
			folder.Name = *req.Name
		}

		if req.ParentID.Present {
			if req.ParentID.Value != nil {
				parentID := *req.ParentID.Value
				exists, err := s.folderRepo.ExistsInWorkspace(txCtx, parentID, workspaceID)
				if err != nil {
					return err
				}
				if !exists {
					result = domain.NotFound[*models.Folder]()
					return nil
				}
				if err := s.validateNoCircularReference(txCtx, folderID, parentID); err != nil {
					return err
				}
				s.logger.Debug("moving folder to new parent", "folder_id", folderID, "parent_id", parentID)
			} else {
				s.logger.Debug("moving folder to root", "folder_id", folderID)
			}
			req.ParentID.Apply(&folder.ParentID)
		}

		now := time.Now()
		folder.UpdatedAt = &now
		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		result = domain.Ok(folder)
		return nil
	})
	if err != nil {
		return domain.Result[*models.Folder]{}, err
	}

	if result.IsOK() {
		s.logger.Info("folder updated", "id", folderID, "workspace_id", workspaceID)
	}
	return result, nil
}

// DeleteFolder removes the folder with its subfolders and their notes
func (s *folderService) DeleteFolder(ctx context.Context, userID, workspaceID, folderID string) (domain.Result[domain.Empty], error) {
	var result domain.Result[domain.Empty]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.folderRepo.GetByID(txCtx, folderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[domain.Empty]()
				return nil
			}
			return err
		}

		ok, err := s.permissions.CanAccessFolder(txCtx, userID, workspaceID, folderID)
		if err != nil {
			return err
		}
		if !ok {
			result = domain.NoPermission[domain.Empty]()
			return nil
		}

		if err := s.folderRepo.Delete(txCtx, folderID); err != nil {
			return err
		}
		result = domain.Ok(domain.Empty{})
		return nil
	})
	if err != nil {
		return domain.Result[domain.Empty]{}, err
	}

	if result.IsOK() {
		s.logger.Info("folder deleted", "id", folderID, "workspace_id", workspaceID)
	}
	return result, nil
}

// validateNoCircularReference ensures moving a folder won't create a cycle
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID string) error {
	if folderID == newParentID {
		return domain.NewValidationError(validation.Errors{"parentId": errFolderCycle})
	}

	isDescendant, err := s.folderRepo.IsDescendant(ctx, folderID, newParentID)
	if err != nil {
		return err
	}
	if isDescendant {
		return domain.NewValidationError(validation.Errors{"parentId": errFolderCycle})
	}
	return nil
}

// validateCreateRequest validates a create folder request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.ParentID, idRules...),
	)
}

// validateUpdateRequest validates an update folder request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, optionalNameRules...),
		validation.Field(&req.ParentID, present(idRules...)),
	)
}
