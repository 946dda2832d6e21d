package services

import (
	"context"
	"errors"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

// ErrServerUnreachable reports a failed reachability probe
var ErrServerUnreachable = errors.New("server unreachable")

// CreateServerRequest represents a server registration
type CreateServerRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UpdateServerRequest changes the url of a server; the name is fixed
type UpdateServerRequest struct {
	URL *string `json:"url,omitempty"`
}

// ServerService handles server registration business logic
type ServerService interface {
	// CreateServer probes the url before persisting; an unreachable server
	// yields ErrServerUnreachable
	CreateServer(ctx context.Context, userID string, req *CreateServerRequest) (domain.Result[*models.Server], error)

	ListServers(ctx context.Context, userID string, page models.PageRequest) (models.Page[models.Server], error)

	// GetServer collapses missing and foreign servers into NotFound
	GetServer(ctx context.Context, userID, serverID string) (domain.Result[*models.Server], error)

	UpdateServer(ctx context.Context, userID, serverID string, req *UpdateServerRequest) (domain.Result[*models.Server], error)

	DeleteServer(ctx context.Context, userID, serverID string) (domain.Result[domain.Empty], error)
}

// HealthProber checks that a server answers its health endpoint
type HealthProber interface {
	Probe(ctx context.Context, baseURL string) error
}
