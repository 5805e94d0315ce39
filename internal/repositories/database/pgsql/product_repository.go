package pgsql

import (
	"context"
	"errors"
	"fmt"
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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product catalog data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, barcode, name, category_id, supplier_id, purchase_price, sale_price, stock, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Barcode,
		&m.Name,
		&m.CategoryID,
		&m.SupplierID,
		&m.PurchasePrice,
		&m.SalePrice,
		&m.Stock,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product row.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelProduct.ProductID,
		modelProduct.Barcode,
		modelProduct.Name,
		modelProduct.CategoryID,
		modelProduct.SupplierID,
		modelProduct.PurchasePrice,
		modelProduct.SalePrice,
		modelProduct.Stock,
		modelProduct.CreatedAt,
		modelProduct.CreatedBy,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to insert product "+modelProduct.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}
	domainProduct := mapping.ToDomainProduct(m)
	return &domainProduct, nil
}

// FindProductByBarcode retrieves a product by its barcode. Serves the
// scan-code lookup path at the register.
func (r *PgxProductRepository) FindProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by barcode "+barcode, err)
	}
	domainProduct := mapping.ToDomainProduct(m)
	return &domainProduct, nil
}

// FindProductsByIDs retrieves products for the given IDs, keyed by ID.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by IDs", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		productsMap[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}

	return productsMap, nil
}

// ListProducts retrieves products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	modelProducts := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		modelProducts = append(modelProducts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// UpdateProduct updates catalog fields and stock of an existing product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET barcode = $2,
		    name = $3,
		    category_id = $4,
		    supplier_id = $5,
		    purchase_price = $6,
		    sale_price = $7,
		    stock = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE product_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelProduct.ProductID,
		modelProduct.Barcode,
		modelProduct.Name,
		modelProduct.CategoryID,
		modelProduct.SupplierID,
		modelProduct.PurchasePrice,
		modelProduct.SalePrice,
		modelProduct.Stock,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to update product "+modelProduct.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. Foreign key constraints from transaction
// lines surface as ErrConflict.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: product %s is referenced by transaction lines", apperrors.ErrConflict, productID)
			}
		}
		return apperrors.NewAppError(500, "failed to delete product "+productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductsByIDsForUpdate retrieves multiple products by IDs and locks the
// rows for update. Must be called within a transaction; every ID must exist.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs for update: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		productsMap[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", err)
	}

	for _, id := range productIDs {
		if _, ok := productsMap[id]; !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
	}

	return productsMap, nil
}

// ApplyStockDeltasInTx adjusts stock for multiple products within a
// transaction. Rows are expected to already be locked by the caller.
func (r *PgxProductRepository) ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int64, updatedBy string) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	productIDs := make([]string, 0, len(deltas))
	for productID, delta := range deltas {
		if delta != 0 {
			batch.Queue(query, productID, delta, now, updatedBy)
			productIDs = append(productIDs, productID)
		}
	}

	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update stock for product %s: %w", productIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: product %s not found during stock update", apperrors.ErrNotFound, productIDs[i])
			}
		}
	}
	closeErr := br.Close()
	if batchErr != nil {
		return batchErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close stock update batch: %w", closeErr)
	}
	return nil
}
