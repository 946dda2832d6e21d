package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/oauth2"

	"sori/internal/config"
	"sori/internal/domain/models"
)

// OIDCProvider runs the authorization code flow with PKCE against an
// OpenID Connect provider.
type OIDCProvider struct {
	name       string
	oauth      *oauth2.Config
	authParams map[string]string
	verifier   IDTokenVerifier
	logger     *slog.Logger
}

// NewOIDCProvider builds a provider from its definition and credentials,
// verifying ID tokens against the definition's JWKS
func NewOIDCProvider(ctx context.Context, def ProviderDefinition, client config.OAuthClient, logger *slog.Logger) (*OIDCProvider, error) {
	verifier, err := NewJWKSVerifier(ctx, def.JWKSURL, client.ClientID, def.Issuers, logger)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", def.Name, err)
	}
	return newOIDCProvider(def, client, verifier, logger), nil
}

func newOIDCProvider(def ProviderDefinition, client config.OAuthClient, verifier IDTokenVerifier, logger *slog.Logger) *OIDCProvider {
	return &OIDCProvider{
		name: def.Name,
		oauth: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			RedirectURL:  client.RedirectURI,
			Scopes:       def.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  def.AuthURL,
				TokenURL: def.TokenURL,
			},
		},
		authParams: def.AuthParams,
		verifier:   verifier,
		logger:     logger,
	}
}

func (p *OIDCProvider) Name() string { return p.name }

// AuthorizationURL adds the S256 challenge of verifier and the static
// auth params of the definition
func (p *OIDCProvider) AuthorizationURL(state, verifier string) string {
	opts := []oauth2.AuthCodeOption{oauth2.S256ChallengeOption(verifier)}

	// stable parameter order
	keys := make([]string, 0, len(p.authParams))
	for k := range p.authParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, oauth2.SetAuthURLParam(k, p.authParams[k]))
	}

	return p.oauth.AuthCodeURL(state, opts...)
}

// Exchange trades the code for tokens and verifies the ID token, if any
func (p *OIDCProvider) Exchange(ctx context.Context, code, verifier string) (*models.ProviderTokens, error) {
	tok, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		p.logger.Warn("authorization code exchange failed", "provider", p.name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCodeExchange, err)
	}

	tokens := &models.ProviderTokens{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    tok.ExpiresIn,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		tokens.Scope = scope
	}

	rawIDToken, _ := tok.Extra("id_token").(string)
	if rawIDToken == "" {
		return tokens, nil
	}

	identity, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	tokens.Identity = identity
	return tokens, nil
}
