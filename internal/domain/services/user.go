package services

import (
	"context"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/httputil"
)

// PutUserRequest is the identity reported by a provider at login
type PutUserRequest struct {
	Email string
	Name  string
	Image *string
}

// UpdateUserRequest is a partial profile update
type UpdateUserRequest struct {
	Name  *string                 `json:"name,omitempty"`
	Image httputil.OptionalString `json:"image"`
}

// UserService handles user business logic
type UserService interface {
	GetUser(ctx context.Context, userID string) (domain.Result[*models.User], error)

	UpdateUser(ctx context.Context, userID string, req *UpdateUserRequest) (domain.Result[*models.User], error)

	// PutUser finds or creates the user behind a provider identity and links
	// the account, in one transaction
	PutUser(ctx context.Context, req *PutUserRequest, account *models.Account) (*models.User, error)
}
