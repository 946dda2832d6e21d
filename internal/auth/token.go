package auth

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/golang-jwt/jwt/v5"

	"sori/internal/config"
	"sori/internal/domain/models"
)

// HMACTokenService issues and verifies HS256 access and refresh tokens.
// Tokens are never stored; validity is signature plus claims only.
type HMACTokenService struct {
	issuer string
	secret []byte
	now    func() time.Time
	logger *slog.Logger
}

// NewTokenService creates a token service signing with secret and stamping
// issuer into every token
func NewTokenService(issuer, secret string, logger *slog.Logger) *HMACTokenService {
	return &HMACTokenService{
		issuer: issuer,
		secret: []byte(secret),
		now:    time.Now,
		logger: logger,
	}
}

// IssueTokenPair signs an access token (api, 1h) and a refresh token
// (auth, 30 days) for the same subject
func (s *HMACTokenService) IssueTokenPair(userID string) (*models.TokenPair, error) {
	now := s.now()

	access, err := s.sign(userID, models.AudienceAPI, now, config.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(userID, models.AudienceAuth, now, config.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *HMACTokenService) sign(subject string, audience models.Audience, now time.Time, ttl time.Duration) (string, error) {
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{string(audience)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken validates signature, issuer, audience, expiry and issued-at,
// then re-checks the payload shape for the audience. Every failure is a
// *TokenError.
func (s *HMACTokenService) VerifyToken(tokenString string, audience models.Audience) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(string(audience)),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		tokenErr := classifyParseError(err)
		s.logger.Debug("token rejected", "kind", tokenErr.Kind.String(), "audience", audience, "error", err)
		return nil, tokenErr
	}

	if err := validatePayload(claims, s.issuer, audience); err != nil {
		s.logger.Warn("token payload rejected after verification", "audience", audience, "error", err)
		return nil, &TokenError{Kind: TokenInvalidPayload, Err: err}
	}

	return claims, nil
}

func (s *HMACTokenService) keyFunc(t *jwt.Token) (any, error) {
	// reject alg confusion before handing out the key
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("%w: %s", errUnsupportedAlgorithm, t.Method.Alg())
	}
	return s.secret, nil
}

// payloadShape is the flat claim set every token must carry
type payloadShape struct {
	Subject   string
	Issuer    string
	Audience  []string
	IssuedAt  *jwt.NumericDate
	ExpiresAt *jwt.NumericDate
}

func validatePayload(claims *models.TokenClaims, issuer string, audience models.Audience) error {
	shape := payloadShape{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		Audience:  claims.Audience,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}
	return validation.ValidateStruct(&shape,
		validation.Field(&shape.Subject, validation.Required),
		validation.Field(&shape.Issuer, validation.Required, validation.In(issuer)),
		validation.Field(&shape.Audience,
			validation.Required,
			validation.Length(1, 1),
			validation.Each(validation.In(string(audience))),
		),
		validation.Field(&shape.IssuedAt, validation.NotNil),
		validation.Field(&shape.ExpiresAt, validation.NotNil),
	)
}
