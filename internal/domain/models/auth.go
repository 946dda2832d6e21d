package models

import "github.com/golang-jwt/jwt/v5"

// Audience discriminates what a token may be used for.
type Audience string

const (
	// AudienceAPI marks access tokens.
	AudienceAPI Audience = "api"
	// AudienceAuth marks refresh tokens.
	AudienceAuth Audience = "auth"
)

// TokenClaims is the claim set of access and refresh tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// GetUserID returns the user ID from the subject claim.
func (c *TokenClaims) GetUserID() string {
	return c.Subject
}

// TokenPair is an access token plus its refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IDTokenClaims is the identity part of an OIDC ID token.
type IDTokenClaims struct {
	jwt.RegisteredClaims
	Email         string  `json:"email"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
	Name          string  `json:"name"`
	Picture       *string `json:"picture,omitempty"`
}

// ProviderTokens is the token endpoint response of an OAuth provider.
// Identity is nil when the response carried no ID token.
type ProviderTokens struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresIn    int64
	Scope        string
	Identity     *IDTokenClaims
}
