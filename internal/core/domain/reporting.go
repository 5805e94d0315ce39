package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary holds the aggregate metrics shown on the dashboard.
type DashboardSummary struct {
	ProductCount   int64           `json:"productCount"`
	LowStockCount  int64           `json:"lowStockCount"` // Products at or below the low-stock threshold
	SupplierCount  int64           `json:"supplierCount"`
	SalesToday     int64           `json:"salesToday"` // ACTIVE sales posted today
	RevenueToday   decimal.Decimal `json:"revenueToday"`
	RevenueMonth   decimal.Decimal `json:"revenueMonth"`
	PurchasesMonth decimal.Decimal `json:"purchasesMonth"`
}

// SalesReportRow is one day of aggregated ACTIVE sales.
type SalesReportRow struct {
	Day          time.Time       `json:"day"`
	Transactions int64           `json:"transactions"`
	UnitsSold    int64           `json:"unitsSold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopProductRow ranks a product by units sold over a period.
type TopProductRow struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	UnitsSold int64           `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
