package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"sori/internal/auth"
	"sori/internal/domain/models"
)

type fakeProvider struct {
	tokens      *models.ProviderTokens
	err         error
	gotVerifier string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) AuthorizationURL(state, verifier string) string {
	return "https://idp.test/authorize?" + url.Values{"state": {state}, "verifier": {verifier}}.Encode()
}

func (p *fakeProvider) Exchange(_ context.Context, _, verifier string) (*models.ProviderTokens, error) {
	p.gotVerifier = verifier
	return p.tokens, p.err
}

func validTokens() *models.ProviderTokens {
	return &models.ProviderTokens{
		AccessToken:  "at",
		TokenType:    "Bearer",
		RefreshToken: "rt",
		ExpiresIn:    3600,
		Scope:        "openid email profile",
		Identity: &models.IDTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "idp-1"},
			Email:            "alice@example.com",
			Name:             "Alice",
		},
	}
}

func newAuthFixture(t *testing.T, provider *fakeProvider) (*fixture, *authService, *auth.HMACTokenService) {
	t.Helper()
	f := newFixture(t)
	tokens := auth.NewTokenService("http://localhost:3000", "test-secret", discardLogger())
	svc := NewAuthService(auth.NewRegistry(provider), f.users, tokens, discardLogger()).(*authService)
	return f, svc, tokens
}

func TestBeginLogin(t *testing.T) {
	_, svc, _ := newAuthFixture(t, &fakeProvider{})

	req, err := svc.BeginLogin("fake")
	if err != nil {
		t.Fatal(err)
	}
	if req.State == "" || len(req.Verifier) < 43 {
		t.Errorf("state %q verifier %q", req.State, req.Verifier)
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("state") != req.State {
		t.Errorf("url state = %q, want %q", u.Query().Get("state"), req.State)
	}

	again, _ := svc.BeginLogin("fake")
	if again.State == req.State || again.Verifier == req.Verifier {
		t.Error("login values reused between calls")
	}

	if _, err := svc.BeginLogin("nope"); !errors.Is(err, auth.ErrUnsupportedProvider) {
		t.Errorf("error = %v, want ErrUnsupportedProvider", err)
	}
}

func TestCompleteLogin(t *testing.T) {
	provider := &fakeProvider{tokens: validTokens()}
	f, svc, tokens := newAuthFixture(t, provider)
	ctx := context.Background()

	result, err := svc.CompleteLogin(ctx, "fake", "code", "verifier")
	if err != nil {
		t.Fatal(err)
	}
	if provider.gotVerifier != "verifier" {
		t.Errorf("exchange verifier = %q", provider.gotVerifier)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("user = %+v", result.User)
	}
	claims, err := tokens.VerifyToken(result.Tokens.AccessToken, models.AudienceAPI)
	if err != nil || claims.GetUserID() != result.User.ID {
		t.Errorf("access token claims = %v, %v", claims, err)
	}
	if _, err := f.repos.Users.GetByAccount(ctx, "fake", "idp-1"); err != nil {
		t.Errorf("account not linked: %v", err)
	}
}

func TestCompleteLoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeProvider)
		wantErr error
	}{
		{
			name:    "exchange rejected",
			mutate:  func(p *fakeProvider) { p.tokens, p.err = nil, auth.ErrCodeExchange },
			wantErr: auth.ErrCodeExchange,
		},
		{
			name:    "no access token",
			mutate:  func(p *fakeProvider) { p.tokens.AccessToken = "" },
			wantErr: auth.ErrInvalidOAuthTokens,
		},
		{
			name:    "no token type",
			mutate:  func(p *fakeProvider) { p.tokens.TokenType = "" },
			wantErr: auth.ErrInvalidOAuthTokens,
		},
		{
			name:    "no id token",
			mutate:  func(p *fakeProvider) { p.tokens.Identity = nil },
			wantErr: auth.ErrMissingIDToken,
		},
		{
			name:    "email malformed",
			mutate:  func(p *fakeProvider) { p.tokens.Identity.Email = "alice" },
			wantErr: auth.ErrInvalidIDToken,
		},
		{
			name:    "name missing",
			mutate:  func(p *fakeProvider) { p.tokens.Identity.Name = "" },
			wantErr: auth.ErrInvalidIDToken,
		},
		{
			name:    "subject missing",
			mutate:  func(p *fakeProvider) { p.tokens.Identity.Subject = "" },
			wantErr: auth.ErrInvalidIDToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{tokens: validTokens()}
			tt.mutate(provider)
			_, svc, _ := newAuthFixture(t, provider)

			if _, err := svc.CompleteLogin(context.Background(), "fake", "code", "v"); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	_, svc, tokens := newAuthFixture(t, &fakeProvider{})

	pair, err := tokens.IssueTokenPair("user-1")
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := tokens.VerifyToken(refreshed.AccessToken, models.AudienceAPI)
	if err != nil || claims.GetUserID() != "user-1" {
		t.Errorf("refreshed access claims = %v, %v", claims, err)
	}

	// no rotation: the old refresh token keeps working
	if _, err := svc.Refresh(pair.RefreshToken); err != nil {
		t.Errorf("old refresh token rejected: %v", err)
	}

	_, err = svc.Refresh(pair.AccessToken)
	if auth.TokenErrorCode(err) != "invalid_token" {
		t.Errorf("access token as refresh: code = %q, want invalid_token", auth.TokenErrorCode(err))
	}
}
