package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"sori/internal/domain/models"
	"sori/internal/httputil"
)

// pathIDs reads the named path values, answering 422 when any of them is
// not a UUID
func pathIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	ids := make([]string, len(names))
	issues := validation.Errors{}
	for i, name := range names {
		ids[i] = r.PathValue(name)
		if err := validation.Validate(ids[i], validation.Required, is.UUID); err != nil {
			issues[name] = err
		}
	}
	if len(issues) > 0 {
		httputil.RespondErrorWithIssues(w, r, http.StatusUnprocessableEntity, "validation_failed", issues)
		return nil, false
	}
	return ids, true
}

// decodeBody parses the JSON body into dest, answering 400 on malformed input
func decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dest any) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		logger.Debug("request body rejected", "path", r.URL.Path, "error", err)
		httputil.RespondError(w, r, http.StatusBadRequest, "invalid_request_body")
		return false
	}
	return true
}

// parsePage reads the pagination query, answering 422 on invalid values
func parsePage(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (models.PageRequest, bool) {
	page, err := httputil.ParsePageRequest(r)
	if err != nil {
		handleError(w, r, logger, err)
		return models.PageRequest{}, false
	}
	return page, true
}

// pageBody wraps a page in the list envelope
func pageBody[T, P any](page models.Page[T], project func(T) P) httputil.PageBody[P] {
	items := make([]P, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, project(item))
	}
	return httputil.PageBody[P]{
		Items: items,
		Meta:  httputil.PageMeta{Previous: page.Previous, Next: page.Next},
	}
}
