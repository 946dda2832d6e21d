package services

import (
	"context"

	"sori/internal/domain/models"
)

// PermissionChecker decides whether a user may act on workspace resources.
// A false result is the normal denial path; errors are infrastructure
// failures only. Missing and foreign resources are not distinguished here.
type PermissionChecker interface {
	// CanAccessWorkspace is true iff the workspace exists and is owned by userID
	CanAccessWorkspace(ctx context.Context, userID, workspaceID string) (bool, error)

	// CanAccessFolder is true iff CanAccessWorkspace holds and the folder
	// exists within that workspace
	CanAccessFolder(ctx context.Context, userID, workspaceID, folderID string) (bool, error)

	// CanPlaceInFolder checks a placement target: a nil folder means the
	// workspace root
	CanPlaceInFolder(ctx context.Context, userID, workspaceID string, folderID *string) (bool, error)

	// CanAccessNote is true iff CanAccessWorkspace holds and the note
	// exists within that workspace
	CanAccessNote(ctx context.Context, userID, workspaceID, noteID string) (bool, error)
}

// TokenService issues and verifies access and refresh tokens
type TokenService interface {
	IssueTokenPair(userID string) (*models.TokenPair, error)

	// VerifyToken checks signature, issuer, audience and lifetime, then the
	// payload shape. Failures are *auth.TokenError values.
	VerifyToken(token string, audience models.Audience) (*models.TokenClaims, error)
}

// AuthorizationRequest is the first leg of an OAuth login
type AuthorizationRequest struct {
	URL      string
	State    string
	Verifier string
}

// LoginResult is the outcome of a completed OAuth login
type LoginResult struct {
	User   *models.User
	Tokens *models.TokenPair
}

// AuthService orchestrates OAuth login and token refresh
type AuthService interface {
	// BeginLogin prepares the provider redirect with fresh PKCE and state values
	BeginLogin(providerName string) (*AuthorizationRequest, error)

	// CompleteLogin exchanges the code, upserts the user and issues tokens
	CompleteLogin(ctx context.Context, providerName, code, verifier string) (*LoginResult, error)

	// Refresh issues a new pair for the subject of a valid refresh token
	Refresh(refreshToken string) (*models.TokenPair, error)
}
