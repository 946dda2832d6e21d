package handler

import (
	"log/slog"
	"net/http"

	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

// ServerHandler handles server registration HTTP requests
type ServerHandler struct {
	serverService services.ServerService
	logger        *slog.Logger
}

// NewServerHandler creates a new server handler
func NewServerHandler(serverService services.ServerService, logger *slog.Logger) *ServerHandler {
	return &ServerHandler{
		serverService: serverService,
		logger:        logger,
	}
}

func toPublicServer(s *models.Server) any {
	return s.ToPublic()
}

// ListServers returns a page of the user's servers
// GET /api/v1/server
func (h *ServerHandler) ListServers(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.serverService.ListServers(r.Context(), httputil.GetUserID(r), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pageBody(result, func(s models.Server) models.PublicServer {
		return s.ToPublic()
	}))
}

// CreateServer registers a server after probing <url>/health
// POST /api/v1/server
// Returns 400 invalid_server_url when the probe fails, 409 for a duplicate name
func (h *ServerHandler) CreateServer(w http.ResponseWriter, r *http.Request) {
	var req services.CreateServerRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.serverService.CreateServer(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusCreated, serverOutcomes, toPublicServer)
}

// GetServer returns one server
// GET /api/v1/server/{id}
func (h *ServerHandler) GetServer(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	res, err := h.serverService.GetServer(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, serverOutcomes, toPublicServer)
}

// UpdateServer changes the url of a server
// PATCH /api/v1/server/{id}
func (h *ServerHandler) UpdateServer(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateServerRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.serverService.UpdateServer(r.Context(), httputil.GetUserID(r), ids[0], &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, serverOutcomes, toPublicServer)
}

// DeleteServer removes a server
// DELETE /api/v1/server/{id}
func (h *ServerHandler) DeleteServer(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	res, err := h.serverService.DeleteServer(r.Context(), httputil.GetUserID(r), ids[0])
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusNoContent, serverOutcomes, nil)
}
