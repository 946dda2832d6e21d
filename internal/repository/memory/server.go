package memory

import (
	"context"
	"fmt"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

// ServerRepository implements repositories.ServerRepository
type ServerRepository struct {
	store *Store
}

func (r *ServerRepository) Create(ctx context.Context, server *models.Server) error {
	return r.store.run(ctx, func(d *dataset) error {
		for _, s := range d.servers {
			if s.UserID == server.UserID && s.Name == server.Name {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("server '%s' already exists", server.Name),
					ResourceType: "server",
					ResourceID:   s.ID,
				}
			}
		}
		d.servers[server.ID] = *server
		return nil
	})
}

func (r *ServerRepository) GetByID(ctx context.Context, id string) (*models.Server, error) {
	var server models.Server
	err := r.store.run(ctx, func(d *dataset) error {
		s, ok := d.servers[id]
		if !ok {
			return fmt.Errorf("server %s: %w", id, domain.ErrNotFound)
		}
		server = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &server, nil
}

func (r *ServerRepository) GetByName(ctx context.Context, userID, name string) (*models.Server, error) {
	var server *models.Server
	err := r.store.run(ctx, func(d *dataset) error {
		for _, s := range d.servers {
			if s.UserID == userID && s.Name == name {
				server = &s
				return nil
			}
		}
		return fmt.Errorf("server '%s': %w", name, domain.ErrNotFound)
	})
	return server, err
}

func (r *ServerRepository) List(ctx context.Context, userID string, page models.PageRequest) ([]models.Server, error) {
	var owned []models.Server
	err := r.store.run(ctx, func(d *dataset) error {
		for _, s := range d.servers {
			if s.UserID == userID {
				owned = append(owned, s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paginate(owned, page, func(s models.Server) sortFields {
		return sortFields{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	}), nil
}

func (r *ServerRepository) Update(ctx context.Context, server *models.Server) error {
	return r.store.run(ctx, func(d *dataset) error {
		existing, ok := d.servers[server.ID]
		if !ok {
			return fmt.Errorf("server %s: %w", server.ID, domain.ErrNotFound)
		}
		existing.URL = server.URL
		existing.UpdatedAt = server.UpdatedAt
		d.servers[server.ID] = existing
		return nil
	})
}

func (r *ServerRepository) Delete(ctx context.Context, id string) error {
	return r.store.run(ctx, func(d *dataset) error {
		if _, ok := d.servers[id]; !ok {
			return fmt.Errorf("server %s: %w", id, domain.ErrNotFound)
		}
		delete(d.servers, id)
		return nil
	})
}
