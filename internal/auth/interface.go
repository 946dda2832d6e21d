package auth

import (
	"context"
	"errors"

	"sori/internal/domain/models"
)

// Errors surfaced by providers and the login flow
var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrCodeExchange        = errors.New("authorization code exchange failed")
	ErrInvalidOAuthTokens  = errors.New("invalid oauth token response")
	ErrMissingIDToken      = errors.New("missing id token")
	ErrInvalidIDToken      = errors.New("invalid id token")
)

// Provider is an OAuth identity provider. New providers are added by
// registering another implementation in the Registry.
type Provider interface {
	// Name is the registry key, used in /auth/{provider} routes
	Name() string

	// AuthorizationURL builds the provider consent URL for a PKCE verifier
	// and state value
	AuthorizationURL(state, verifier string) string

	// Exchange trades an authorization code for tokens. A present ID token
	// is signature-checked and returned as Identity.
	Exchange(ctx context.Context, code, verifier string) (*models.ProviderTokens, error)
}

// IDTokenVerifier validates a raw ID token and extracts its claims
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*models.IDTokenClaims, error)
}
