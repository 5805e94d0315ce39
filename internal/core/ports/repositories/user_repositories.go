package repositories

import (
	"context"
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for operator accounts.
type UserRepositoryFacade interface {
	// SaveUser inserts a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a non-deleted user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a non-deleted user by username. Used by login.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves non-deleted users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// UpdateUser updates name, role and password hash of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error
}
