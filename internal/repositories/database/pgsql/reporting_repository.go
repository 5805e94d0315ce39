package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDashboardSummary computes the dashboard metrics as of now. Voided
// transactions are excluded from every aggregate.
func (r *reportingRepository) GetDashboardSummary(ctx context.Context, now time.Time, lowStockThreshold int64) (*domain.DashboardSummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	query := `
		SELECT
			(SELECT COUNT(*) FROM products) AS product_count,
			(SELECT COUNT(*) FROM products WHERE stock <= $1) AS low_stock_count,
			(SELECT COUNT(*) FROM suppliers) AS supplier_count,
			(SELECT COUNT(*) FROM sales WHERE state = 'ACTIVE' AND sale_date >= $2) AS sales_today,
			(SELECT COALESCE(SUM(total), 0) FROM sales WHERE state = 'ACTIVE' AND sale_date >= $2) AS revenue_today,
			(SELECT COALESCE(SUM(total), 0) FROM sales WHERE state = 'ACTIVE' AND sale_date >= $3) AS revenue_month,
			(SELECT COALESCE(SUM(total), 0) FROM purchases WHERE state = 'ACTIVE' AND purchase_date >= $3) AS purchases_month
	`

	var summary domain.DashboardSummary
	err := r.Pool.QueryRow(ctx, query, lowStockThreshold, dayStart, monthStart).Scan(
		&summary.ProductCount,
		&summary.LowStockCount,
		&summary.SupplierCount,
		&summary.SalesToday,
		&summary.RevenueToday,
		&summary.RevenueMonth,
		&summary.PurchasesMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard summary: %w", err)
	}

	return &summary, nil
}

// GetSalesReport aggregates ACTIVE sales per day over [from, to].
func (r *reportingRepository) GetSalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error) {
	query := `
		SELECT
			date_trunc('day', s.sale_date) AS day,
			COUNT(DISTINCT s.sale_id) AS transactions,
			COALESCE(SUM(l.quantity), 0) AS units_sold,
			COALESCE(SUM(l.subtotal), 0) AS revenue
		FROM sales s
		JOIN sale_lines l ON l.sale_id = s.sale_id
		WHERE s.state = 'ACTIVE'
			AND s.sale_date >= $1
			AND s.sale_date < $2
		GROUP BY 1
		ORDER BY 1
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying sales report: %w", err)
	}
	defer rows.Close()

	var result []domain.SalesReportRow
	for rows.Next() {
		var row domain.SalesReportRow
		if err := rows.Scan(&row.Day, &row.Transactions, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning sales report row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales report rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.SalesReportRow{}, nil
	}
	return result, nil
}

// GetTopProducts ranks products by units sold over [from, to].
func (r *reportingRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT
			p.product_id,
			p.name,
			COALESCE(SUM(l.quantity), 0) AS units_sold,
			COALESCE(SUM(l.subtotal), 0) AS revenue
		FROM sale_lines l
		JOIN sales s ON s.sale_id = l.sale_id
		JOIN products p ON p.product_id = l.product_id
		WHERE s.state = 'ACTIVE'
			AND s.sale_date >= $1
			AND s.sale_date < $2
		GROUP BY p.product_id, p.name
		ORDER BY units_sold DESC, revenue DESC
		LIMIT $3
	`

	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top products: %w", err)
	}
	defer rows.Close()

	var result []domain.TopProductRow
	for rows.Next() {
		var row domain.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning top product row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top product rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TopProductRow{}, nil
	}
	return result, nil
}
