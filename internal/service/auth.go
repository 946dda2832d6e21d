package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/oauth2"

	"sori/internal/auth"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
)

type authService struct {
	providers *auth.Registry
	users     services.UserService
	tokens    services.TokenService
	logger    *slog.Logger
}

// NewAuthService creates the login and refresh orchestrator
func NewAuthService(
	providers *auth.Registry,
	users services.UserService,
	tokens services.TokenService,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		providers: providers,
		users:     users,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *authService) BeginLogin(providerName string) (*services.AuthorizationRequest, error) {
	provider, ok := s.providers.Get(providerName)
	if !ok {
		return nil, auth.ErrUnsupportedProvider
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()

	return &services.AuthorizationRequest{
		URL:      provider.AuthorizationURL(state, verifier),
		State:    state,
		Verifier: verifier,
	}, nil
}

func (s *authService) CompleteLogin(ctx context.Context, providerName, code, verifier string) (*services.LoginResult, error) {
	provider, ok := s.providers.Get(providerName)
	if !ok {
		return nil, auth.ErrUnsupportedProvider
	}

	tokens, err := provider.Exchange(ctx, code, verifier)
	if err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" || tokens.TokenType == "" {
		return nil, auth.ErrInvalidOAuthTokens
	}
	if tokens.Identity == nil {
		return nil, auth.ErrMissingIDToken
	}

	identity := tokens.Identity
	if err := validateIdentity(identity); err != nil {
		s.logger.Warn("id token identity rejected", "provider", providerName, "error", err)
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidIDToken, err)
	}

	user, err := s.users.PutUser(ctx,
		&services.PutUserRequest{
			Email: identity.Email,
			Name:  identity.Name,
			Image: identity.Picture,
		},
		accountFromTokens(providerName, identity.Subject, tokens),
	)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssueTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "provider", providerName)
	return &services.LoginResult{User: user, Tokens: pair}, nil
}

func (s *authService) Refresh(refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.VerifyToken(refreshToken, models.AudienceAuth)
	if err != nil {
		return nil, err
	}
	return s.tokens.IssueTokenPair(claims.GetUserID())
}

func validateIdentity(identity *models.IDTokenClaims) error {
	err := validation.ValidateStruct(identity,
		validation.Field(&identity.Email, validation.Required, is.EmailFormat),
		validation.Field(&identity.Name, validation.Required),
		validation.Field(&identity.Picture, is.URL),
	)
	if err != nil {
		return err
	}
	if identity.Subject == "" {
		return errors.New("sub: cannot be blank")
	}
	return nil
}

func accountFromTokens(provider, subject string, tokens *models.ProviderTokens) *models.Account {
	account := &models.Account{
		Provider:          provider,
		ProviderAccountID: subject,
		AccessToken:       &tokens.AccessToken,
	}
	if tokens.RefreshToken != "" {
		account.RefreshToken = &tokens.RefreshToken
	}
	if tokens.Scope != "" {
		account.Scope = &tokens.Scope
	}
	if tokens.ExpiresIn > 0 {
		expiresAt := time.Now().Unix() + tokens.ExpiresIn
		account.ExpiresAt = &expiresAt
	}
	return account
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
