package handler

import (
	"log/slog"
	"net/http"

	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

// UserHandler handles requests about the authenticated user
type UserHandler struct {
	userService services.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func toPublicUser(u *models.User) any {
	return u.ToPublic()
}

// GetUser returns the authenticated user
// GET /api/v1/user
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	res, err := h.userService.GetUser(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, userOutcomes, toPublicUser)
}

// UpdateUser changes the name or image of the authenticated user
// PATCH /api/v1/user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateUserRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	res, err := h.userService.UpdateUser(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondResult(w, r, res, http.StatusOK, userOutcomes, toPublicUser)
}
