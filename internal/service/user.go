package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
	"sori/internal/domain/services"
)

type userService struct {
	userRepo  repositories.UserRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetUser returns the user, NotFound when the token outlived the account
func (s *userService) GetUser(ctx context.Context, userID string) (domain.Result[*models.User], error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound[*models.User](), nil
		}
		return domain.Result[*models.User]{}, err
	}
	return domain.Ok(user), nil
}

// UpdateUser changes the profile name and image
func (s *userService) UpdateUser(ctx context.Context, userID string, req *services.UpdateUserRequest) (domain.Result[*models.User], error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, optionalNameRules...),
		validation.Field(&req.Image, present(imageRules...)),
	)
	if err := domain.NewValidationError(err); err != nil {
		return domain.Result[*models.User]{}, err
	}

	var result domain.Result[*models.User]
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetByID(txCtx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = domain.NotFound[*models.User]()
				return nil
			}
			return err
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		req.Image.Apply(&user.Image)

		now := time.Now()
		user.UpdatedAt = &now
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		result = domain.Ok(user)
		return nil
	})
	if err != nil {
		return domain.Result[*models.User]{}, err
	}

	if result.IsOK() {
		s.logger.Info("user updated", "id", userID)
	}
	return result, nil
}

// PutUser resolves the user behind a provider identity:
//   - an already linked account gets its provider tokens refreshed
//   - a user with the same email gets the account linked
//   - otherwise a new user is created with the account
func (s *userService) PutUser(ctx context.Context, req *services.PutUserRequest, account *models.Account) (*models.User, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	var user *models.User
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		linked, err := s.userRepo.GetByAccount(txCtx, account.Provider, account.ProviderAccountID)
		switch {
		case err == nil:
			user = linked
			account.UserID = linked.ID
			return s.userRepo.UpsertAccount(txCtx, account)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		existing, err := s.userRepo.GetByEmail(txCtx, req.Email)
		switch {
		case err == nil:
			now := time.Now()
			existing.UpdatedAt = &now
			if err := s.userRepo.Update(txCtx, existing); err != nil {
				return err
			}
			user = existing
			account.UserID = existing.ID
			s.logger.Info("account linked to existing user", "user_id", existing.ID, "provider", account.Provider)
			return s.userRepo.UpsertAccount(txCtx, account)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		created := &models.User{
			ID:        uuid.NewString(),
			Email:     req.Email,
			Name:      req.Name,
			Image:     req.Image,
			CreatedAt: time.Now(),
		}
		if err := s.userRepo.Create(txCtx, created); err != nil {
			return err
		}
		user = created
		account.UserID = created.ID
		s.logger.Info("user created", "id", created.ID, "provider", account.Provider)
		return s.userRepo.UpsertAccount(txCtx, account)
	})
	if err != nil {
		return nil, fmt.Errorf("put user: %w", err)
	}

	return user, nil
}
