package services

import (
	"context"
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// ReportingService defines the dashboard and report queries.
type ReportingService interface {
	// GetDashboardSummary computes the aggregate dashboard metrics.
	GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)

	// GetSalesReport aggregates ACTIVE sales per day over [from, to].
	GetSalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error)

	// GetTopProducts ranks products by units sold over [from, to].
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error)
}
