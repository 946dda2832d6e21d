package handler

import (
	"log/slog"
	"net/http"

	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	noteService services.NoteService
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService services.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

func toPublicNote(n *models.Note) any {
	return n.ToPublic()
}

// CreateNote creates a note
// POST /api/v1/workspace/{workspaceId}/note
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "workspaceId")
	if !ok {
		return
	}

	var req services.CreateNoteRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.noteService.CreateNote(r.Context(), httputil.GetUserID(r), ids[0], &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusCreated, noteOutcomes, toPublicNote)
}

// UpdateNote renames a note or moves it to another folder
// PATCH /api/v1/workspace/{workspaceId}/note/{noteId}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "workspaceId", "noteId")
	if !ok {
		return
	}

	var req services.UpdateNoteRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.noteService.UpdateNote(r.Context(), httputil.GetUserID(r), ids[0], ids[1], &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, noteOutcomes, toPublicNote)
}

// DeleteNote deletes a note
// DELETE /api/v1/workspace/{workspaceId}/note/{noteId}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "workspaceId", "noteId")
	if !ok {
		return
	}

	res, err := h.noteService.DeleteNote(r.Context(), httputil.GetUserID(r), ids[0], ids[1])
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusNoContent, noteOutcomes, nil)
}
