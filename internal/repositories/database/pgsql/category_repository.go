package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	"github.com/minimarketpos/pos_backend/internal/models"
	"github.com/minimarketpos/pos_backend/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// SaveCategory inserts a new category row.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (category_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert category "+m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE category_id = $1;
	`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&m.CategoryID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}
	domainCategory := mapping.ToDomainCategory(m)
	return &domainCategory, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	modelCategories := []models.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		modelCategories = append(modelCategories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}

	return mapping.ToDomainCategorySlice(modelCategories), nil
}

// UpdateCategory updates the name of an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE category_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update category "+m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Products referencing it keep their rows;
// the FK is ON DELETE SET NULL, so only a missing row is an error here.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: category %s is still referenced", apperrors.ErrConflict, categoryID)
		}
		return apperrors.NewAppError(500, "failed to delete category "+categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
