package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey      contextKey = "userID"
	bearerTokenKey contextKey = "bearerToken"
)

// WithUserID adds the authenticated user ID to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithBearerToken stores the raw token parsed from the Authorization header
func WithBearerToken(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), bearerTokenKey, token)
	return r.WithContext(ctx)
}

// GetBearerToken retrieves the raw bearer token, empty if not parsed
func GetBearerToken(r *http.Request) string {
	token, _ := r.Context().Value(bearerTokenKey).(string)
	return token
}
