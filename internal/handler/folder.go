package handler

import (
	"log/slog"
	"net/http"

	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// toPublicFolder projects a folder record; nested contents are only
// returned by the workspace endpoints
func toPublicFolder(f *models.Folder) any {
	return models.PublicFolder{
		ID:       f.ID,
		Name:     f.Name,
		Notes:    []models.PublicNote{},
		Children: []models.PublicFolder{},
	}
}

// CreateFolder creates a folder
// POST /api/v1/workspace/{workspaceId}/folder
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "workspaceId")
	if !ok {
		return
	}

	var req services.CreateFolderRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.folderService.CreateFolder(r.Context(), httputil.GetUserID(r), ids[0], &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusCreated, folderOutcomes, toPublicFolder)
}

// UpdateFolder renames and/or moves a folder
// PATCH /api/v1/workspace/{workspaceId}/folder/{folderId}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "workspaceId", "folderId")
	if !ok {
		return
	}

	var req services.UpdateFolderRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.folderService.UpdateFolder(r.Context(), httputil.GetUserID(r), ids[0], ids[1], &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, folderOutcomes, toPublicFolder)
}

// DeleteFolder deletes a folder with its subfolders and their notes
// DELETE /api/v1/workspace/{workspaceId}/folder/{folderId}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "workspaceId", "folderId")
	if !ok {
		return
	}

	res, err := h.folderService.DeleteFolder(r.Context(), httputil.GetUserID(r), ids[0], ids[1])
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusNoContent, folderOutcomes, nil)
}
