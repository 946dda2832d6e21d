package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
	"sori/internal/domain/services"
)

type serverService struct {
	serverRepo repositories.ServerRepository
	txManager  repositories.TransactionManager
	prober     services.HealthProber
	logger     *slog.Logger
}

// NewServerService creates a new server service
func NewServerService(
	serverRepo repositories.ServerRepository,
	txManager repositories.TransactionManager,
	prober services.HealthProber,
	logger *slog.Logger,
) services.ServerService {
	return &serverService{
		serverRepo: serverRepo,
		txManager:  txManager,
		prober:     prober,
		logger:     logger,
	}
}

// CreateServer probes the server, then registers it under a name unique for
// the owner. The probe runs before the transaction opens.
func (s *serverService) CreateServer(ctx context.Context, userID string, req *services.CreateServerRequest) (domain.Result[*models.Server], error) {
	if err := domain.NewValidationError(s.validateCreateRequest(req)); err != nil {
		return domain.Result[*models.Server]{}, err
	}

	if err := s.prober.Probe(ctx, req.URL); err != nil {
		return domain.Result[*models.Server]{}, err
	}

	server := &models.Server{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		URL:       req.URL,
		CreatedAt: time.Now(),
	}

	var result domain.Result[*models.Server]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.serverRepo.GetByName(txCtx, userID, req.Name); err == nil {
			result = domain.AlreadyExists[*models.Server]()
			return nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := s.serverRepo.Create(txCtx, server); err != nil {
			return err
		}
		result = domain.Ok(server)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.AlreadyExists[*models.Server](), nil
		}
		return domain.Result[*models.Server]{}, err
	}

	if result.IsOK() {
		s.logger.Info("server registered", "id", server.ID, "name", server.Name, "user_id", userID)
	}
	return result, nil
}

// ListServers returns one page of the user's servers
func (s *serverService) ListServers(ctx context.Context, userID string, page models.PageRequest) (models.Page[models.Server], error) {
	servers, err := s.serverRepo.List(ctx, userID, page)
	if err != nil {
		return models.Page[models.Server]{}, err
	}
	return models.NewPage(servers, page.Limit, func(s models.Server) string { return s.ID }), nil
}

// GetServer returns a server of the user; foreign servers are NotFound
func (s *serverService) GetServer(ctx context.Context, userID, serverID string) (domain.Result[*models.Server], error) {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound[*models.Server](), nil
		}
		return domain.Result[*models.Server]{}, err
	}
	if server.UserID != userID {
		return domain.NotFound[*models.Server](), nil
	}
	return domain.Ok(server), nil
}

// UpdateServer changes the url of a server, probing a changed url first
func (s *serverService) UpdateServer(ctx context.Context, userID, serverID string, req *services.UpdateServerRequest) (domain.Result[*models.Server], error) {
	if err := domain.NewValidationError(s.validateUpdateRequest(req)); err != nil {
		return domain.Result[*models.Server]{}, err
	}

	// probe outside the transaction; missing and foreign servers are
	// settled inside it
	if req.URL != nil {
		current, err := s.serverRepo.GetByID(ctx, serverID)
		if err == nil && current.UserID == userID && current.URL != *req.URL {
			if err := s.prober.Probe(ctx, *req.URL); err != nil {
				return domain.Result[*models.Server]{}, err
			}
		}
	}

	var result domain.Result[*models.Server]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		server, err := s.serverRepo.GetByID(txCtx, serverID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[*models.Server]()
				return nil
			}
			return err
		}
		if server.UserID != userID {
			result = domain.NoPermission[*models.Server]()
			return nil
		}

		if req.URL != nil {
			server.URL = *req.URL
		}

		now := time.Now()
		server.UpdatedAt = &now
		if err := s.serverRepo.Update(txCtx, server); err != nil {
			return err
		}
		result = domain.Ok(server)
		return nil
	})
	if err != nil {
		return domain.Result[*models.Server]{}, err
	}

	if result.IsOK() {
		s.logger.Info("server updated", "id", serverID, "user_id", userID)
	}
	return result, nil
}

// DeleteServer removes a server of the user
func (s *serverService) DeleteServer(ctx context.Context, userID, serverID string) (domain.Result[domain.Empty], error) {
	var result domain.Result[domain.Empty]
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		server, err := s.serverRepo.GetByID(txCtx, serverID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[domain.Empty]()
				return nil
			}
			return err
		}
		if server.UserID != userID {
			result = domain.NoPermission[domain.Empty]()
			return nil
		}

		if err := s.serverRepo.Delete(txCtx, serverID); err != nil {
			return err
		}
		result = domain.Ok(domain.Empty{})
		return nil
	})
	if err != nil {
		return domain.Result[domain.Empty]{}, err
	}

	if result.IsOK() {
		s.logger.Info("server deleted", "id", serverID, "user_id", userID)
	}
	return result, nil
}

var urlRules = []validation.Rule{
	validation.Required,
	is.RequestURL,
	validation.RuneLength(1, 2048),
}

func (s *serverService) validateCreateRequest(req *services.CreateServerRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.URL, urlRules...),
	)
}

func (s *serverService) validateUpdateRequest(req *services.UpdateServerRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.URL, validation.NilOrNotEmpty, is.RequestURL, validation.RuneLength(1, 2048)),
	)
}
