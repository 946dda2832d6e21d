package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sori/internal/domain/models"
)

const (
	testIssuer = "http://localhost:3000"
	testSecret = "test-secret"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokenService(now time.Time) *HMACTokenService {
	s := NewTokenService(testIssuer, testSecret, testLogger())
	s.now = func() time.Time { return now }
	return s
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	now := time.Now()
	s := newTestTokenService(now)

	pair, err := s.IssueTokenPair("user-42")
	if err != nil {
		t.Fatalf("IssueTokenPair() error = %v", err)
	}

	access, err := s.VerifyToken(pair.AccessToken, models.AudienceAPI)
	if err != nil {
		t.Fatalf("VerifyToken(access, api) error = %v", err)
	}
	if access.Subject != "user-42" || access.Audience[0] != "api" {
		t.Errorf("access claims = sub %q aud %v", access.Subject, access.Audience)
	}
	if got := access.ExpiresAt.Sub(access.IssuedAt.Time); got != time.Hour {
		t.Errorf("access lifetime = %v, want 1h", got)
	}

	refresh, err := s.VerifyToken(pair.RefreshToken, models.AudienceAuth)
	if err != nil {
		t.Fatalf("VerifyToken(refresh, auth) error = %v", err)
	}
	if refresh.Subject != "user-42" || refresh.Audience[0] != "auth" {
		t.Errorf("refresh claims = sub %q aud %v", refresh.Subject, refresh.Audience)
	}
	if got := refresh.ExpiresAt.Sub(refresh.IssuedAt.Time); got != 30*24*time.Hour {
		t.Errorf("refresh lifetime = %v, want 30 days", got)
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestTokenService(now)
	pair, err := s.IssueTokenPair("user-1")
	if err != nil {
		t.Fatal(err)
	}

	base := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"api"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	tests := []struct {
		name     string
		token    func() string
		audience models.Audience
		verifyAt time.Time
		wantKind TokenErrorKind
		wantCode string
	}{
		{
			name:     "access token used as refresh",
			token:    func() string { return pair.AccessToken },
			audience: models.AudienceAuth,
			wantKind: TokenAudienceMismatch,
			wantCode: "invalid_token",
		},
		{
			name:     "refresh token used as access",
			token:    func() string { return pair.RefreshToken },
			audience: models.AudienceAPI,
			wantKind: TokenAudienceMismatch,
			wantCode: "invalid_token",
		},
		{
			name:     "malformed",
			token:    func() string { return "broken" },
			audience: models.AudienceAPI,
			wantKind: TokenMalformed,
			wantCode: "invalid_token",
		},
		{
			name:     "expired",
			token:    func() string { return pair.AccessToken },
			audience: models.AudienceAPI,
			verifyAt: now.Add(2 * time.Hour),
			wantKind: TokenExpired,
			wantCode: "token_expired",
		},
		{
			name: "wrong signature",
			token: func() string {
				return signClaims(t, jwt.SigningMethodHS256, []byte("other-secret"), base())
			},
			audience: models.AudienceAPI,
			wantKind: TokenSignatureMismatch,
			wantCode: "invalid_signature",
		},
		{
			name: "wrong issuer",
			token: func() string {
				c := base()
				c.Issuer = "http://evil.test"
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			audience: models.AudienceAPI,
			wantKind: TokenIssuerMismatch,
			wantCode: "invalid_issuer",
		},
		{
			name: "not yet valid",
			token: func() string {
				c := base()
				c.NotBefore = jwt.NewNumericDate(now.Add(10 * time.Minute))
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			audience: models.AudienceAPI,
			wantKind: TokenNotYetValid,
			wantCode: "token_not_active",
		},
		{
			name: "issued in the future",
			token: func() string {
				c := base()
				c.IssuedAt = jwt.NewNumericDate(now.Add(10 * time.Minute))
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			audience: models.AudienceAPI,
			wantKind: TokenIssuedInFuture,
			wantCode: "invalid_issued_at",
		},
		{
			name: "HS512 is not accepted",
			token: func() string {
				return signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), base())
			},
			audience: models.AudienceAPI,
			wantKind: TokenUnsupportedAlgorithm,
			wantCode: "unsupported_token_algorithm",
		},
		{
			name: "alg none",
			token: func() string {
				return signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, base())
			},
			audience: models.AudienceAPI,
			wantKind: TokenUnsupportedAlgorithm,
			wantCode: "unsupported_token_algorithm",
		},
		{
			name: "missing subject",
			token: func() string {
				c := base()
				c.Subject = ""
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			audience: models.AudienceAPI,
			wantKind: TokenInvalidPayload,
			wantCode: "token_verification_failed",
		},
		{
			name: "two audiences",
			token: func() string {
				c := base()
				c.Audience = jwt.ClaimStrings{"api", "auth"}
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			audience: models.AudienceAPI,
			wantKind: TokenInvalidPayload,
			wantCode: "token_verification_failed",
		},
		{
			name: "missing issued at",
			token: func() string {
				c := base()
				c.IssuedAt = nil
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			audience: models.AudienceAPI,
			wantKind: TokenInvalidPayload,
			wantCode: "token_verification_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := s
			if !tt.verifyAt.IsZero() {
				verifier = newTestTokenService(tt.verifyAt)
			}

			_, err := verifier.VerifyToken(tt.token(), tt.audience)
			var tokenErr *TokenError
			if !errors.As(err, &tokenErr) {
				t.Fatalf("VerifyToken() error = %v, want *TokenError", err)
			}
			if tokenErr.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v (err: %v)", tokenErr.Kind, tt.wantKind, err)
			}
			if code := TokenErrorCode(err); code != tt.wantCode {
				t.Errorf("TokenErrorCode() = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestRefreshTokensStayIndependentlyValid(t *testing.T) {
	now := time.Now()
	s := newTestTokenService(now)

	first, err := s.IssueTokenPair("user-7")
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return now.Add(time.Second) }
	second, err := s.IssueTokenPair("user-7")
	if err != nil {
		t.Fatal(err)
	}

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		if _, err := s.VerifyToken(token, models.AudienceAuth); err != nil {
			t.Errorf("VerifyToken() error = %v", err)
		}
	}
}

func TestTokenErrorCodeFallback(t *testing.T) {
	if got := TokenErrorCode(errors.New("boom")); got != "token_verification_failed" {
		t.Errorf("TokenErrorCode(plain error) = %q", got)
	}
}
