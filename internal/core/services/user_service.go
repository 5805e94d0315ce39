package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
	"github.com/minimarketpos/pos_backend/internal/utils"
)

// userService manages operator accounts and credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a new operator account with a bcrypt password hash.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("username", user.Username), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser updates an existing user.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = role
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			logger.Error("Failed to hash password", slog.String("error", err.Error()))
			return nil, apperrors.NewAppError(500, "failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	now := time.Now().UTC()
	user.LastUpdatedAt = now
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser marks a user as deleted (soft delete). Attribution on historical
// transactions stays intact.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID == requestingUserID {
		return fmt.Errorf("%w: users cannot delete themselves", apperrors.ErrValidation)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, requestingUserID, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}

// AuthenticateUser authenticates a user with username and password. The error
// is identical for an unknown username and a wrong password.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Login failed, bad credentials", slog.String("username", username))
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}
