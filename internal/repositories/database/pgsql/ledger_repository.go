package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	"github.com/minimarketpos/pos_backend/internal/models"
	"github.com/minimarketpos/pos_backend/internal/utils/mapping"
	"github.com/minimarketpos/pos_backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	productRepo portsrepo.ProductRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for sale and purchase data.
// The product repository is injected so that stock locking and adjustment
// happen inside the same database transaction as the header/line inserts.
func newPgxLedgerRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveSale persists a sale header and its lines and decrements product stock,
// all within one database transaction. Every referenced product row is locked
// FOR UPDATE before any stock check, so checks run against one consistent
// snapshot rather than per-line re-reads.
func (r *PgxLedgerRepository) SaveSale(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction is committed

	// 1. Lock all referenced products and accumulate the stock deltas.
	deltas := domain.SaleLineDeltas(lines, -1)
	productIDs := make([]string, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}

	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock products for sale", err)
	}

	// 2. Reject the whole sale if any product lacks stock. Nothing has been
	// written yet, but the explicit rollback path keeps the invariant obvious.
	if err := domain.CheckStockSufficiency(lockedProducts, deltas); err != nil {
		return err
	}

	// 3. Insert the sale header.
	modelSale := mapping.ToModelSale(sale)
	saleQuery := `
		INSERT INTO sales (
			sale_id, user_id, sale_date, total, state, void_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, saleQuery,
		modelSale.SaleID,
		modelSale.UserID,
		modelSale.SaleDate,
		modelSale.Total,
		modelSale.State,
		modelSale.VoidReason,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+modelSale.SaleID, err)
	}

	// 4. Batch insert the lines.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO sale_lines (line_id, sale_id, product_id, quantity, unit_price, subtotal, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelSaleLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.SaleID,
			modelLine.ProductID,
			modelLine.Quantity,
			modelLine.UnitPrice,
			modelLine.Subtotal,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for sale "+modelSale.SaleID, err)
	}

	// 5. Apply the stock decrements on the locked rows.
	if err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas, sale.CreatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to apply stock deltas for sale "+modelSale.SaleID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit sale "+modelSale.SaleID, err)
	}
	return nil
}

// SavePurchase persists a purchase header and its lines and increments product
// stock within one database transaction. There is no sufficiency check;
// purchases only add stock.
func (r *PgxLedgerRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, lines []domain.PurchaseLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deltas := domain.PurchaseLineDeltas(lines, 1)
	productIDs := make([]string, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}

	// Locking also validates that every referenced product exists.
	if _, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock products for purchase", err)
	}

	modelPurchase := mapping.ToModelPurchase(purchase)
	purchaseQuery := `
		INSERT INTO purchases (
			purchase_id, user_id, supplier_id, purchase_date, total, state, void_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, purchaseQuery,
		modelPurchase.PurchaseID,
		modelPurchase.UserID,
		modelPurchase.SupplierID,
		modelPurchase.PurchaseDate,
		modelPurchase.Total,
		modelPurchase.State,
		modelPurchase.VoidReason,
		modelPurchase.CreatedAt,
		modelPurchase.CreatedBy,
		modelPurchase.LastUpdatedAt,
		modelPurchase.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert purchase "+modelPurchase.PurchaseID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO purchase_lines (line_id, purchase_id, product_id, quantity, unit_price, subtotal, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelPurchaseLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.PurchaseID,
			modelLine.ProductID,
			modelLine.Quantity,
			modelLine.UnitPrice,
			modelLine.Subtotal,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for purchase "+modelPurchase.PurchaseID, err)
	}

	if err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas, purchase.CreatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to apply stock deltas for purchase "+modelPurchase.PurchaseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit purchase "+modelPurchase.PurchaseID, err)
	}
	return nil
}

// VoidSale flips an ACTIVE sale to VOIDED and restores each line's stock, all
// within one database transaction. The header row is locked before the state
// check so two concurrent voids cannot both pass the guard.
func (r *PgxLedgerRepository) VoidSale(ctx context.Context, saleID string, reason string, voidedBy string, voidedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var state models.TransactionState
	err = tx.QueryRow(ctx, `SELECT state FROM sales WHERE sale_id = $1 FOR UPDATE;`, saleID).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock sale "+saleID, err)
	}
	if err := domain.TransactionState(state).EnsureVoidable(); err != nil {
		return err
	}

	lines, err := r.findSaleLinesWith(ctx, tx, saleID)
	if err != nil {
		return err
	}

	// Restoring stock is the exact inverse of the posting deltas.
	deltas := domain.SaleLineDeltas(lines, 1)
	productIDs := make([]string, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}
	if _, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock products for sale void", err)
	}
	if err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas, voidedBy); err != nil {
		return apperrors.NewAppError(500, "failed to restore stock for sale "+saleID, err)
	}

	updateQuery := `
		UPDATE sales
		SET state = $2,
		    void_reason = $3,
		    voided_by = $4,
		    voided_at = $5,
		    last_updated_at = $5,
		    last_updated_by = $4
		WHERE sale_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, saleID, models.StateVoided, reason, voidedBy, voidedAt); err != nil {
		return apperrors.NewAppError(500, "failed to mark sale voided "+saleID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit void of sale "+saleID, err)
	}
	return nil
}

// VoidPurchase flips an ACTIVE purchase to VOIDED and removes each line's
// stock within one database transaction. If the delivered units have already
// been sold the void fails with an InsufficientStockError rather than driving
// stock negative.
func (r *PgxLedgerRepository) VoidPurchase(ctx context.Context, purchaseID string, reason string, voidedBy string, voidedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var state models.TransactionState
	err = tx.QueryRow(ctx, `SELECT state FROM purchases WHERE purchase_id = $1 FOR UPDATE;`, purchaseID).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock purchase "+purchaseID, err)
	}
	if err := domain.TransactionState(state).EnsureVoidable(); err != nil {
		return err
	}

	lines, err := r.findPurchaseLinesWith(ctx, tx, purchaseID)
	if err != nil {
		return err
	}

	deltas := domain.PurchaseLineDeltas(lines, -1)
	productIDs := make([]string, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}
	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock products for purchase void", err)
	}
	// Refuse to drive stock negative when the delivered units were sold on.
	if err := domain.CheckStockSufficiency(lockedProducts, deltas); err != nil {
		return err
	}
	if err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas, voidedBy); err != nil {
		return apperrors.NewAppError(500, "failed to remove stock for purchase "+purchaseID, err)
	}

	updateQuery := `
		UPDATE purchases
		SET state = $2,
		    void_reason = $3,
		    voided_by = $4,
		    voided_at = $5,
		    last_updated_at = $5,
		    last_updated_by = $4
		WHERE purchase_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, purchaseID, models.StateVoided, reason, voidedBy, voidedAt); err != nil {
		return apperrors.NewAppError(500, "failed to mark purchase voided "+purchaseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit void of purchase "+purchaseID, err)
	}
	return nil
}

// FindSaleByID retrieves a sale header by its ID.
func (r *PgxLedgerRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT sale_id, user_id, sale_date, total, state, void_reason, voided_by, voided_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales
		WHERE sale_id = $1;
	`
	var m models.Sale
	err := r.Pool.QueryRow(ctx, query, saleID).Scan(
		&m.SaleID,
		&m.UserID,
		&m.SaleDate,
		&m.Total,
		&m.State,
		&m.VoidReason,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by ID "+saleID, err)
	}
	domainSale := mapping.ToDomainSale(m)
	return &domainSale, nil
}

// FindSaleLines retrieves the line items of a sale in insertion order.
func (r *PgxLedgerRepository) FindSaleLines(ctx context.Context, saleID string) ([]domain.SaleLine, error) {
	rows, err := r.Pool.Query(ctx, saleLinesQuery, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for sale "+saleID, err)
	}
	defer rows.Close()
	return scanSaleLines(rows, saleID)
}

func (r *PgxLedgerRepository) findSaleLinesWith(ctx context.Context, tx pgx.Tx, saleID string) ([]domain.SaleLine, error) {
	rows, err := tx.Query(ctx, saleLinesQuery, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for sale "+saleID, err)
	}
	defer rows.Close()
	return scanSaleLines(rows, saleID)
}

const saleLinesQuery = `
	SELECT line_id, sale_id, product_id, quantity, unit_price, subtotal,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM sale_lines
	WHERE sale_id = $1
	ORDER BY created_at, line_id;
`

func scanSaleLines(rows pgx.Rows, saleID string) ([]domain.SaleLine, error) {
	lines := []models.SaleLine{}
	for rows.Next() {
		var l models.SaleLine
		err := rows.Scan(
			&l.LineID,
			&l.SaleID,
			&l.ProductID,
			&l.Quantity,
			&l.UnitPrice,
			&l.Subtotal,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for sale "+saleID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for sale "+saleID, err)
	}
	return mapping.ToDomainSaleLineSlice(lines), nil
}

// ListSales retrieves a paginated list of sales using token-based pagination.
func (r *PgxLedgerRepository) ListSales(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT sale_id, user_id, sale_date, total, state, void_reason, voided_by, voided_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales
	`
	filterClause := `WHERE 1=1`
	if !includeVoided {
		filterClause = `WHERE state = 'ACTIVE'`
	}
	orderByClause := `ORDER BY sale_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (sale_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()

	modelSales := make([]models.Sale, 0, fetchLimit)
	for rows.Next() {
		var m models.Sale
		scanErr := rows.Scan(
			&m.SaleID,
			&m.UserID,
			&m.SaleDate,
			&m.Total,
			&m.State,
			&m.VoidReason,
			&m.VoidedBy,
			&m.VoidedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sale row", scanErr)
		}
		modelSales = append(modelSales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	var nextTokenVal *string
	results := modelSales
	if len(modelSales) > limit {
		last := modelSales[limit-1]
		token := pagination.EncodeToken(last.SaleDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelSales[:limit]
	}

	return mapping.ToDomainSaleSlice(results), nextTokenVal, nil
}

// FindPurchaseByID retrieves a purchase header by its ID.
func (r *PgxLedgerRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `
		SELECT purchase_id, user_id, supplier_id, purchase_date, total, state, void_reason, voided_by, voided_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchases
		WHERE purchase_id = $1;
	`
	var m models.Purchase
	err := r.Pool.QueryRow(ctx, query, purchaseID).Scan(
		&m.PurchaseID,
		&m.UserID,
		&m.SupplierID,
		&m.PurchaseDate,
		&m.Total,
		&m.State,
		&m.VoidReason,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase by ID "+purchaseID, err)
	}
	domainPurchase := mapping.ToDomainPurchase(m)
	return &domainPurchase, nil
}

// FindPurchaseLines retrieves the line items of a purchase in insertion order.
func (r *PgxLedgerRepository) FindPurchaseLines(ctx context.Context, purchaseID string) ([]domain.PurchaseLine, error) {
	rows, err := r.Pool.Query(ctx, purchaseLinesQuery, purchaseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for purchase "+purchaseID, err)
	}
	defer rows.Close()
	return scanPurchaseLines(rows, purchaseID)
}

func (r *PgxLedgerRepository) findPurchaseLinesWith(ctx context.Context, tx pgx.Tx, purchaseID string) ([]domain.PurchaseLine, error) {
	rows, err := tx.Query(ctx, purchaseLinesQuery, purchaseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for purchase "+purchaseID, err)
	}
	defer rows.Close()
	return scanPurchaseLines(rows, purchaseID)
}

const purchaseLinesQuery = `
	SELECT line_id, purchase_id, product_id, quantity, unit_price, subtotal,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM purchase_lines
	WHERE purchase_id = $1
	ORDER BY created_at, line_id;
`

func scanPurchaseLines(rows pgx.Rows, purchaseID string) ([]domain.PurchaseLine, error) {
	lines := []models.PurchaseLine{}
	for rows.Next() {
		var l models.PurchaseLine
		err := rows.Scan(
			&l.LineID,
			&l.PurchaseID,
			&l.ProductID,
			&l.Quantity,
			&l.UnitPrice,
			&l.Subtotal,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for purchase "+purchaseID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for purchase "+purchaseID, err)
	}
	return mapping.ToDomainPurchaseLineSlice(lines), nil
}

// ListPurchases retrieves a paginated list of purchases using token-based pagination.
func (r *PgxLedgerRepository) ListPurchases(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.Purchase, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT purchase_id, user_id, supplier_id, purchase_date, total, state, void_reason, voided_by, voided_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchases
	`
	filterClause := `WHERE 1=1`
	if !includeVoided {
		filterClause = `WHERE state = 'ACTIVE'`
	}
	orderByClause := `ORDER BY purchase_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (purchase_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query purchases", err)
	}
	defer rows.Close()

	modelPurchases := make([]models.Purchase, 0, fetchLimit)
	for rows.Next() {
		var m models.Purchase
		scanErr := rows.Scan(
			&m.PurchaseID,
			&m.UserID,
			&m.SupplierID,
			&m.PurchaseDate,
			&m.Total,
			&m.State,
			&m.VoidReason,
			&m.VoidedBy,
			&m.VoidedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan purchase row", scanErr)
		}
		modelPurchases = append(modelPurchases, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating purchase rows", err)
	}

	var nextTokenVal *string
	results := modelPurchases
	if len(modelPurchases) > limit {
		last := modelPurchases[limit-1]
		token := pagination.EncodeToken(last.PurchaseDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelPurchases[:limit]
	}

	return mapping.ToDomainPurchaseSlice(results), nextTokenVal, nil
}
