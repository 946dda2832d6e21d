package repositories

import (
	"context"

	"sori/internal/domain/models"
)

// ServerRepository defines data access operations for registered servers
type ServerRepository interface {
	// Create inserts a server; a name taken by the same owner yields a
	// *domain.ConflictError
	Create(ctx context.Context, server *models.Server) error

	// GetByID retrieves a server by ID regardless of owner
	GetByID(ctx context.Context, id string) (*models.Server, error)

	// GetByName retrieves the owner's server with the given name
	GetByName(ctx context.Context, userID, name string) (*models.Server, error)

	// List returns one page of the owner's servers
	List(ctx context.Context, userID string, page models.PageRequest) ([]models.Server, error)

	// Update writes url and updated_at
	Update(ctx context.Context, server *models.Server) error

	// Delete removes the server
	Delete(ctx context.Context, id string) error
}
