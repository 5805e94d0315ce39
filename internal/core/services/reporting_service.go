package services

import (
	"context"
	"fmt"
	"time"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
)

// reportingService serves the dashboard and daily sales reports.
type reportingService struct {
	reportingRepo     portsrepo.ReportingRepository
	lowStockThreshold int64
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, lowStockThreshold int64) portssvc.ReportingService {
	return &reportingService{
		reportingRepo:     reportingRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetDashboardSummary computes the aggregate dashboard metrics.
func (s *reportingService) GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	return s.reportingRepo.GetDashboardSummary(ctx, time.Now().UTC(), s.lowStockThreshold)
}

// GetSalesReport aggregates ACTIVE sales per day over [from, to].
func (s *reportingService) GetSalesReport(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report period end precedes start", apperrors.ErrValidation)
	}
	// The repository treats the upper bound as exclusive; cover the whole
	// final day.
	return s.reportingRepo.GetSalesReport(ctx, from, to.AddDate(0, 0, 1))
}

// GetTopProducts ranks products by units sold over [from, to].
func (s *reportingService) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report period end precedes start", apperrors.ErrValidation)
	}
	return s.reportingRepo.GetTopProducts(ctx, from, to.AddDate(0, 0, 1), limit)
}
