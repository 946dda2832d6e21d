package middleware

import (
	"log/slog"
	"net/http"
	"regexp"

	"sori/internal/auth"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.+)$`)

// BearerToken extracts the token from "Authorization: Bearer <token>" and
// stores it in the request context. It does not verify the token.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httputil.RespondError(w, r, http.StatusUnauthorized, "missing_authorization_header")
			return
		}

		match := bearerPattern.FindStringSubmatch(header)
		if match == nil {
			httputil.RespondError(w, r, http.StatusUnauthorized, "invalid_authorization_header")
			return
		}

		next.ServeHTTP(w, httputil.WithBearerToken(r, match[1]))
	})
}

// Authenticate verifies the bearer token as an access token and stores its
// subject as the user ID. It must run after BearerToken.
func Authenticate(tokens services.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.VerifyToken(httputil.GetBearerToken(r), models.AudienceAPI)
			if err != nil {
				code := auth.TokenErrorCode(err)
				logger.Debug("access token rejected", "code", code, "path", r.URL.Path)
				httputil.RespondError(w, r, http.StatusUnauthorized, code)
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

// RequireAccessToken chains BearerToken and Authenticate
func RequireAccessToken(tokens services.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	authenticate := Authenticate(tokens, logger)
	return func(next http.Handler) http.Handler {
		return BearerToken(authenticate(next))
	}
}
