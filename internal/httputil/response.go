package httputil

import (
	"encoding/json"
	"net/http"

	"sori/internal/i18n"
)

// ErrorBody is the body of every error response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Issues  any    `json:"issues,omitempty"`
}

// PageMeta bounds a page of a list response
type PageMeta struct {
	Previous *string `json:"previous"`
	Next     *string `json:"next"`
}

// PageBody is the envelope of list responses
type PageBody[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// RespondJSON writes a JSON response with the given status code.
// The payload is marshaled first so an encoding failure never leaves a
// partial response behind.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes {code, message}, localizing the message from the
// request's Accept-Language header
func RespondError(w http.ResponseWriter, r *http.Request, status int, code string) {
	RespondJSON(w, status, ErrorBody{
		Code:    code,
		Message: i18n.Default().Message(r.Header.Get("Accept-Language"), code),
	})
}

// RespondErrorWithIssues writes an error body carrying per-field issues
func RespondErrorWithIssues(w http.ResponseWriter, r *http.Request, status int, code string, issues any) {
	RespondJSON(w, status, ErrorBody{
		Code:    code,
		Message: i18n.Default().Message(r.Header.Get("Accept-Language"), code),
		Issues:  issues,
	})
}

// RespondNoContent writes 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
