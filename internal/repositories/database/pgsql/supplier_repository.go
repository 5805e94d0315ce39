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

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

// SaveSupplier inserts a new supplier row.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (supplier_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID, m.Name, m.Phone, m.Address, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert supplier "+m.SupplierID, err)
	}
	return nil
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		WHERE supplier_id = $1;
	`
	var m models.Supplier
	err := r.Pool.QueryRow(ctx, query, supplierID).Scan(
		&m.SupplierID, &m.Name, &m.Phone, &m.Address, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier by ID "+supplierID, err)
	}
	domainSupplier := mapping.ToDomainSupplier(m)
	return &domainSupplier, nil
}

// ListSuppliers retrieves all suppliers ordered by name.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	query := `
		SELECT supplier_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers", err)
	}
	defer rows.Close()

	modelSuppliers := []models.Supplier{}
	for rows.Next() {
		var m models.Supplier
		if err := rows.Scan(&m.SupplierID, &m.Name, &m.Phone, &m.Address, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		modelSuppliers = append(modelSuppliers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}

	return mapping.ToDomainSupplierSlice(modelSuppliers), nil
}

// UpdateSupplier updates contact details of an existing supplier.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		UPDATE suppliers
		SET name = $2, phone = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE supplier_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.SupplierID, m.Name, m.Phone, m.Address, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update supplier "+m.SupplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSupplier removes a supplier. Suppliers referenced by purchases cannot
// be deleted.
func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: supplier %s is referenced by purchases", apperrors.ErrConflict, supplierID)
		}
		return apperrors.NewAppError(500, "failed to delete supplier "+supplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
