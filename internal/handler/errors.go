package handler

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"sori/internal/domain"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

// outcomeError is the response for a non-OK service outcome
type outcomeError struct {
	status int
	code   string
}

// outcomeErrors maps the denial outcomes of one resource to responses.
// Outcomes a resource never produces are left zero.
type outcomeErrors struct {
	notFound      outcomeError
	noPermission  outcomeError
	alreadyExists outcomeError
}

var (
	userOutcomes = outcomeErrors{
		notFound: outcomeError{http.StatusNotFound, "user_not_found"},
	}
	workspaceOutcomes = outcomeErrors{
		notFound:      outcomeError{http.StatusNotFound, "workspace_not_found"},
		alreadyExists: outcomeError{http.StatusBadRequest, "workspace_already_exists"},
	}
	folderOutcomes = outcomeErrors{
		notFound:     outcomeError{http.StatusNotFound, "folder_not_found"},
		noPermission: outcomeError{http.StatusForbidden, "no_permission"},
	}
	noteOutcomes = outcomeErrors{
		notFound:     outcomeError{http.StatusNotFound, "not_found"},
		noPermission: outcomeError{http.StatusForbidden, "no_permission"},
	}
	serverOutcomes = outcomeErrors{
		notFound:      outcomeError{http.StatusNotFound, "server_not_found"},
		noPermission:  outcomeError{http.StatusForbidden, "no_permission"},
		alreadyExists: outcomeError{http.StatusConflict, "server_already_exists"},
	}
)

func (m outcomeErrors) lookup(o domain.Outcome) outcomeError {
	var e outcomeError
	switch o {
	case domain.OutcomeNotFound:
		e = m.notFound
	case domain.OutcomeNoPermission:
		e = m.noPermission
	case domain.OutcomeAlreadyExists:
		e = m.alreadyExists
	}
	if e.status == 0 {
		return outcomeError{http.StatusInternalServerError, "internal_server_error"}
	}
	return e
}

// respondResult writes the projected value with status on success and the
// mapped error otherwise. It reports whether the result was OK.
func respondResult[T any](w http.ResponseWriter, r *http.Request, res domain.Result[T], status int, outcomes outcomeErrors, project func(T) any) bool {
	if !res.IsOK() {
		e := outcomes.lookup(res.Outcome)
		httputil.RespondError(w, r, e.status, e.code)
		return false
	}

	switch {
	case status == http.StatusNoContent:
		httputil.RespondNoContent(w)
	case project != nil:
		httputil.RespondJSON(w, status, project(res.Value))
	default:
		httputil.RespondJSON(w, status, res.Value)
	}
	return true
}

// handleError converts service errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondErrorWithIssues(w, r, http.StatusUnprocessableEntity, "validation_failed", validationErr.Issues)
	case errors.Is(err, services.ErrServerUnreachable):
		httputil.RespondError(w, r, http.StatusBadRequest, "invalid_server_url")
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, r, http.StatusNotFound, "route_not_found")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, r, http.StatusForbidden, "no_permission")
	default:
		logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
		)
		httputil.RespondError(w, r, http.StatusInternalServerError, "internal_server_error")
	}
}
