package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"sori/internal/auth"
	"sori/internal/config"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

const (
	verifierCookie = "oauth_code_verifier"
	stateCookie    = "oauth_state"
	redirectCookie = "oauth_redirect"
)

// AuthHandlerConfig controls the login cookies
type AuthHandlerConfig struct {
	// SecureCookies marks the login cookies Secure
	SecureCookies bool
	// RedirectOrigins are the origins a finished login may redirect to
	RedirectOrigins []string
}

// AuthHandler handles the OAuth login flow and token refresh
type AuthHandler struct {
	authService services.AuthService
	config      AuthHandlerConfig
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, cfg AuthHandlerConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
		logger:      logger,
	}
}

type loginResponse struct {
	User         models.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

// Login starts an OAuth login and redirects to the provider
// GET /api/v1/auth/{provider}
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	req, err := h.authService.BeginLogin(provider)
	if err != nil {
		if errors.Is(err, auth.ErrUnsupportedProvider) {
			httputil.RespondError(w, r, http.StatusBadRequest, "unsupported_provider")
			return
		}
		handleError(w, r, h.logger, err)
		return
	}

	h.setCookie(w, verifierCookie, req.Verifier)
	h.setCookie(w, stateCookie, req.State)
	if redirect := r.URL.Query().Get("redirect_uri"); redirect != "" {
		if h.redirectAllowed(redirect) {
			h.setCookie(w, redirectCookie, redirect)
		} else {
			h.logger.Warn("login redirect not allowed", "redirect_uri", redirect)
		}
	}

	http.Redirect(w, r, req.URL, http.StatusFound)
}

// Callback finishes an OAuth login. With a stored redirect the tokens are
// appended to it as query parameters; otherwise they are returned as JSON.
// GET /api/v1/auth/{provider}/callback
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	query := r.URL.Query()

	code := query.Get("code")
	state, stateErr := r.Cookie(stateCookie)
	verifier, verifierErr := r.Cookie(verifierCookie)
	if code == "" || stateErr != nil || verifierErr != nil || state.Value == "" {
		httputil.RespondError(w, r, http.StatusBadRequest, "invalid_oauth_request")
		return
	}
	if query.Get("state") != state.Value {
		httputil.RespondError(w, r, http.StatusBadRequest, "invalid_oauth_state")
		return
	}

	result, err := h.authService.CompleteLogin(r.Context(), provider, code, verifier.Value)
	if err != nil {
		h.handleLoginError(w, r, provider, err)
		return
	}

	redirect, _ := r.Cookie(redirectCookie)
	h.clearCookie(w, verifierCookie)
	h.clearCookie(w, stateCookie)
	h.clearCookie(w, redirectCookie)

	if redirect != nil && h.redirectAllowed(redirect.Value) {
		target, _ := url.Parse(redirect.Value)
		q := target.Query()
		q.Set("accessToken", result.Tokens.AccessToken)
		q.Set("refreshToken", result.Tokens.RefreshToken)
		target.RawQuery = q.Encode()
		http.Redirect(w, r, target.String(), http.StatusFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loginResponse{
		User:         result.User.ToPublic(),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

func (h *AuthHandler) handleLoginError(w http.ResponseWriter, r *http.Request, provider string, err error) {
	status, code := http.StatusInternalServerError, ""
	switch {
	case errors.Is(err, auth.ErrUnsupportedProvider):
		status, code = http.StatusBadRequest, "unsupported_provider"
	case errors.Is(err, auth.ErrCodeExchange):
		status, code = http.StatusBadRequest, "invalid_oauth_request"
	case errors.Is(err, auth.ErrInvalidOAuthTokens):
		code = "invalid_oauth_tokens"
	case errors.Is(err, auth.ErrMissingIDToken):
		code = "missing_id_token"
	case errors.Is(err, auth.ErrInvalidIDToken):
		code = "invalid_id_token"
	default:
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Warn("login failed", "provider", provider, "code", code, "error", err)
	httputil.RespondError(w, r, status, code)
}

// Refresh issues a new token pair for a refresh token. Any verification
// failure is reported as invalid_token.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	pair, err := h.authService.Refresh(httputil.GetBearerToken(r))
	if err != nil {
		var tokenErr *auth.TokenError
		if errors.As(err, &tokenErr) {
			h.logger.Debug("refresh token rejected", "kind", tokenErr.Kind.String())
			httputil.RespondError(w, r, http.StatusUnauthorized, "invalid_token")
			return
		}
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pair)
}

// redirectAllowed reports whether target is an absolute URL on an allowed
// origin
func (h *AuthHandler) redirectAllowed(target string) bool {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return slices.Contains(h.config.RedirectOrigins, u.Scheme+"://"+u.Host)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(config.OAuthCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
