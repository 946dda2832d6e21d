package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenErrorKind classifies why a token was rejected
type TokenErrorKind int

const (
	TokenInvalid TokenErrorKind = iota // fallback, unclassified
	TokenMalformed
	TokenUnsupportedAlgorithm
	TokenSignatureMismatch
	TokenExpired
	TokenNotYetValid
	TokenIssuedInFuture
	TokenIssuerMismatch
	TokenAudienceMismatch
	TokenInvalidPayload
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenMalformed:
		return "malformed"
	case TokenUnsupportedAlgorithm:
		return "unsupported_algorithm"
	case TokenSignatureMismatch:
		return "signature_mismatch"
	case TokenExpired:
		return "expired"
	case TokenNotYetValid:
		return "not_yet_valid"
	case TokenIssuedInFuture:
		return "issued_in_future"
	case TokenIssuerMismatch:
		return "issuer_mismatch"
	case TokenAudienceMismatch:
		return "audience_mismatch"
	case TokenInvalidPayload:
		return "invalid_payload"
	default:
		return "invalid"
	}
}

// TokenError is returned by VerifyToken for every rejected token
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + e.Kind.String()
	}
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// errUnsupportedAlgorithm is returned from the key func for any alg other
// than HS256
var errUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// classifyParseError maps jwt/v5 parse and validation errors to a kind.
// Order matters: a token failing several checks reports the first match.
func classifyParseError(err error) *TokenError {
	kind := TokenInvalid
	switch {
	case errors.Is(err, errUnsupportedAlgorithm), errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = TokenUnsupportedAlgorithm
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = TokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		kind = TokenSignatureMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = TokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		kind = TokenNotYetValid
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		kind = TokenIssuedInFuture
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		kind = TokenIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		kind = TokenAudienceMismatch
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		kind = TokenInvalidPayload
	}
	return &TokenError{Kind: kind, Err: err}
}

// tokenErrorCodes is the public error code of each failure kind.
// Kinds not listed here report token_verification_failed.
var tokenErrorCodes = map[TokenErrorKind]string{
	TokenUnsupportedAlgorithm: "unsupported_token_algorithm",
	TokenMalformed:            "invalid_token",
	TokenAudienceMismatch:     "invalid_token",
	TokenNotYetValid:          "token_not_active",
	TokenExpired:              "token_expired",
	TokenIssuedInFuture:       "invalid_issued_at",
	TokenIssuerMismatch:       "invalid_issuer",
	TokenSignatureMismatch:    "invalid_signature",
}

// TokenErrorCode returns the stable public code for a verification error
func TokenErrorCode(err error) string {
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		if code, ok := tokenErrorCodes[tokenErr.Kind]; ok {
			return code
		}
	}
	return "token_verification_failed"
}
