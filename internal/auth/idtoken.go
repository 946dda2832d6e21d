package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"sori/internal/domain/models"
)

// JWKSVerifier verifies provider ID tokens against the provider's JWKS.
type JWKSVerifier struct {
	keys     jwt.Keyfunc
	clientID string
	issuers  []string
	logger   *slog.Logger
}

// NewJWKSVerifier creates a verifier fetching public keys from jwksURL.
// keyfunc caches the key set and refreshes it in the background for the
// lifetime of ctx.
func NewJWKSVerifier(ctx context.Context, jwksURL, clientID string, issuers []string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	logger.Info("id token verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		keys:     jwks.Keyfunc,
		clientID: clientID,
		issuers:  issuers,
		logger:   logger,
	}, nil
}

// Verify checks signature, audience (client id), expiry and issuer
func (v *JWKSVerifier) Verify(_ context.Context, rawIDToken string) (*models.IDTokenClaims, error) {
	claims := &models.IDTokenClaims{}
	token, err := jwt.ParseWithClaims(rawIDToken, claims, v.keys,
		// provider keys are asymmetric
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.logger.Debug("id token parse failed", "error", err)
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("id token is invalid")
	}

	if len(v.issuers) > 0 && !slices.Contains(v.issuers, claims.Issuer) {
		v.logger.Warn("id token has unexpected issuer", "issuer", claims.Issuer, "allowed", v.issuers)
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}

	return claims, nil
}
