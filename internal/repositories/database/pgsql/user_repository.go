package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	"github.com/minimarketpos/pos_backend/internal/models"
	"github.com/minimarketpos/pos_backend/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for operator accounts.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, password_hash, name, role, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.Role,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveUser inserts a new user row.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, password_hash, name, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.PasswordHash, m.Name, m.Role,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert user "+m.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a non-deleted user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by ID "+userID, err)
	}
	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

// FindUserByUsername retrieves a non-deleted user by username. Used by login.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by username", err)
	}
	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

// ListUsers retrieves non-deleted users ordered by username.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL ORDER BY username LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}

	return mapping.ToDomainUserSlice(modelUsers), nil
}

// UpdateUser updates name, role and password hash of an existing user.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = $2, role = $3, password_hash = $4, last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.UserID, m.Name, m.Role, m.PasswordHash, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user "+m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUserDeleted soft-deletes a user. Historical transactions keep their
// attribution, so user rows are never physically removed.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE users
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark user deleted "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
