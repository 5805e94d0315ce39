package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionState is the lifecycle state of a sale or purchase row.
type TransactionState string

const (
	StateActive TransactionState = "ACTIVE"
	StateVoided TransactionState = "VOIDED"
)

// Sale is a row in the sales table.
type Sale struct {
	SaleID     string           `db:"sale_id"`
	UserID     string           `db:"user_id"`
	SaleDate   time.Time        `db:"sale_date"`
	Total      decimal.Decimal  `db:"total"`
	State      TransactionState `db:"state"`
	VoidReason string           `db:"void_reason"`
	VoidedBy   *string          `db:"voided_by"`
	VoidedAt   *time.Time       `db:"voided_at"`
	AuditFields
}

// SaleLine is a row in the sale_lines table.
type SaleLine struct {
	LineID    string          `db:"line_id"`
	SaleID    string          `db:"sale_id"`
	ProductID string          `db:"product_id"`
	Quantity  int64           `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	AuditFields
}

// Purchase is a row in the purchases table.
type Purchase struct {
	PurchaseID   string           `db:"purchase_id"`
	UserID       string           `db:"user_id"`
	SupplierID   string           `db:"supplier_id"`
	PurchaseDate time.Time        `db:"purchase_date"`
	Total        decimal.Decimal  `db:"total"`
	State        TransactionState `db:"state"`
	VoidReason   string           `db:"void_reason"`
	VoidedBy     *string          `db:"voided_by"`
	VoidedAt     *time.Time       `db:"voided_at"`
	AuditFields
}

// PurchaseLine is a row in the purchase_lines table.
type PurchaseLine struct {
	LineID     string          `db:"line_id"`
	PurchaseID string          `db:"purchase_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int64           `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Subtotal   decimal.Decimal `db:"subtotal"`
	AuditFields
}
