package handler

import (
	"log/slog"
	"net/http"

	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
	"sori/internal/service/tree"
)

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService services.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           logger,
	}
}

func toPublicWorkspace(c *models.WorkspaceContents) models.PublicWorkspace {
	return models.PublicWorkspace{
		ID:      c.ID,
		Name:    c.Name,
		Image:   c.Image,
		Notes:   tree.ToPublicNotes(c.Notes),
		Folders: tree.ToPublicFolders(c.Folders),
	}
}

// ListWorkspaces returns a page of the user's workspaces
// GET /api/v1/workspace
func (h *WorkspaceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.workspaceService.ListWorkspaces(r.Context(), httputil.GetUserID(r), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pageBody(result, toPublicWorkspace))
}

// CreateWorkspace creates a workspace
// POST /api/v1/workspace
// Returns 400 workspace_already_exists for a duplicate name
func (h *WorkspaceHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req services.CreateWorkspaceRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.workspaceService.CreateWorkspace(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusCreated, workspaceOutcomes, func(ws *models.Workspace) any {
		return toPublicWorkspace(&models.WorkspaceContents{Workspace: *ws})
	})
}

// GetWorkspace returns a workspace with its folder tree.
// ?detailed=false returns flat folders instead.
// GET /api/v1/workspace/{id}
func (h *WorkspaceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}
	detailed := r.URL.Query().Get("detailed") != "false"

	res, err := h.workspaceService.GetWorkspace(r.Context(), httputil.GetUserID(r), ids[0], detailed)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, workspaceOutcomes, func(c *models.WorkspaceContents) any {
		return toPublicWorkspace(c)
	})
}

// UpdateWorkspace renames a workspace or changes its image
// PATCH /api/v1/workspace/{id}
func (h *WorkspaceHandler) UpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateWorkspaceRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	userID := httputil.GetUserID(r)
	res, err := h.workspaceService.UpdateWorkspace(r.Context(), userID, ids[0], &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if !res.IsOK() {
		respondResult(w, r, res, http.StatusOK, workspaceOutcomes, nil)
		return
	}

	// respond with the same shape as GET
	contents, err := h.workspaceService.GetWorkspace(r.Context(), userID, ids[0], true)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondResult(w, r, contents, http.StatusOK, workspaceOutcomes, func(c *models.WorkspaceContents) any {
		return toPublicWorkspace(c)
	})
}

// DeleteWorkspace deletes a workspace with all of its folders and notes
// DELETE /api/v1/workspace/{id}
func (h *WorkspaceHandler) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	res, err := h.workspaceService.DeleteWorkspace(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusNoContent, workspaceOutcomes, nil)
}
