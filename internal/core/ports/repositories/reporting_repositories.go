package repositories

import (
	"context"
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries for the dashboard
// and reports. Voided transactions are excluded from every aggregate.
type ReportingRepository interface {
	// GetDashboardSummary computes the dashboard metrics as of now.
	GetDashboardSummary(ctx context.Context, now time.Time, lowStockThreshold int64) (*domain.DashboardSummary, error)

	// GetSalesReport aggregates ACTIVE sales per day over [from, to].
	GetSalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error)

	// GetTopProducts ranks products by units sold over [from, to].
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error)
}
