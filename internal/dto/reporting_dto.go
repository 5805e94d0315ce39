package dto

import (
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportPeriodParams defines the date range of a report query.
type ReportPeriodParams struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // YYYY-MM-DD
}

// TopProductsParams extends the period with a result cap.
type TopProductsParams struct {
	ReportPeriodParams
	Limit int `form:"limit,default=10"`
}

// DashboardResponse defines the aggregate metrics returned for the dashboard.
type DashboardResponse struct {
	ProductCount   int64           `json:"productCount"`
	LowStockCount  int64           `json:"lowStockCount"`
	SupplierCount  int64           `json:"supplierCount"`
	SalesToday     int64           `json:"salesToday"`
	RevenueToday   decimal.Decimal `json:"revenueToday"`
	RevenueMonth   decimal.Decimal `json:"revenueMonth"`
	PurchasesMonth decimal.Decimal `json:"purchasesMonth"`
}

// SalesReportRowResponse is one day of the sales report.
type SalesReportRowResponse struct {
	Day          time.Time       `json:"day"`
	Transactions int64           `json:"transactions"`
	UnitsSold    int64           `json:"unitsSold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesReportResponse wraps the sales report rows.
type SalesReportResponse struct {
	From time.Time                `json:"from"`
	To   time.Time                `json:"to"`
	Rows []SalesReportRowResponse `json:"rows"`
}

// TopProductRowResponse ranks one product by units sold.
type TopProductRowResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	UnitsSold int64           `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ToDashboardResponse converts a domain.DashboardSummary to DashboardResponse.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		ProductCount:   s.ProductCount,
		LowStockCount:  s.LowStockCount,
		SupplierCount:  s.SupplierCount,
		SalesToday:     s.SalesToday,
		RevenueToday:   s.RevenueToday,
		RevenueMonth:   s.RevenueMonth,
		PurchasesMonth: s.PurchasesMonth,
	}
}

// ToSalesReportResponse converts domain report rows to a SalesReportResponse.
func ToSalesReportResponse(from, to time.Time, rows []domain.SalesReportRow) SalesReportResponse {
	respRows := make([]SalesReportRowResponse, len(rows))
	for i, r := range rows {
		respRows[i] = SalesReportRowResponse{
			Day:          r.Day,
			Transactions: r.Transactions,
			UnitsSold:    r.UnitsSold,
			Revenue:      r.Revenue,
		}
	}
	return SalesReportResponse{From: from, To: to, Rows: respRows}
}

// ToTopProductResponses converts domain top-product rows to DTOs.
func ToTopProductResponses(rows []domain.TopProductRow) []TopProductRowResponse {
	responses := make([]TopProductRowResponse, len(rows))
	for i, r := range rows {
		responses[i] = TopProductRowResponse{
			ProductID: r.ProductID,
			Name:      r.Name,
			UnitsSold: r.UnitsSold,
			Revenue:   r.Revenue,
		}
	}
	return responses
}
