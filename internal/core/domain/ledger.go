package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionState is the lifecycle state of a sale or purchase header.
// VOIDED is terminal.
type TransactionState string

const (
	StateActive TransactionState = "ACTIVE"
	StateVoided TransactionState = "VOIDED"
)

// Sale is a posted sale header together with its line items.
type Sale struct {
	SaleID     string           `json:"saleID"` // Primary Key (UUID)
	UserID     string           `json:"userID"` // Operator attribution (Not Null)
	SaleDate   time.Time        `json:"saleDate"`
	Total      decimal.Decimal  `json:"total"` // Sum of line subtotals
	State      TransactionState `json:"state"`
	VoidReason string           `json:"voidReason,omitempty"` // Populated only when VOIDED
	VoidedBy   *string          `json:"voidedBy,omitempty"`
	VoidedAt   *time.Time       `json:"voidedAt,omitempty"`
	Lines      []SaleLine       `json:"lines,omitempty"`
	AuditFields
}

// SaleLine is one product entry within a sale. UnitPrice is a snapshot taken
// at posting time, not a live reference to the product's current price.
type SaleLine struct {
	LineID    string          `json:"lineID"` // Primary Key (UUID)
	SaleID    string          `json:"saleID"` // FK -> Sale.saleID (Not Null)
	ProductID string          `json:"productID"`
	Quantity  int64           `json:"quantity"` // Positive
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"` // Quantity * UnitPrice
	AuditFields
}

// Purchase is a posted inbound delivery header together with its line items.
type Purchase struct {
	PurchaseID   string           `json:"purchaseID"` // Primary Key (UUID)
	UserID       string           `json:"userID"`
	SupplierID   string           `json:"supplierID"` // FK -> Supplier.supplierID (Not Null)
	PurchaseDate time.Time        `json:"purchaseDate"`
	Total        decimal.Decimal  `json:"total"`
	State        TransactionState `json:"state"`
	VoidReason   string           `json:"voidReason,omitempty"`
	VoidedBy     *string          `json:"voidedBy,omitempty"`
	VoidedAt     *time.Time       `json:"voidedAt,omitempty"`
	Lines        []PurchaseLine   `json:"lines,omitempty"`
	AuditFields
}

// PurchaseLine is one product entry within a purchase.
type PurchaseLine struct {
	LineID     string          `json:"lineID"`
	PurchaseID string          `json:"purchaseID"` // FK -> Purchase.purchaseID (Not Null)
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"` // Positive
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	AuditFields
}

// SubtotalOf computes the line subtotal for a quantity at a unit price.
func SubtotalOf(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// Validate checks the structural invariants of a sale line.
func (l SaleLine) Validate() error {
	return validateLine(l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal)
}

// Validate checks the structural invariants of a purchase line.
func (l PurchaseLine) Validate() error {
	return validateLine(l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal)
}

func validateLine(productID string, quantity int64, unitPrice, subtotal decimal.Decimal) error {
	if productID == "" {
		return errors.New("product ID is required")
	}
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return errors.New("unit price must not be negative")
	}
	if !subtotal.Equal(SubtotalOf(quantity, unitPrice)) {
		return errors.New("subtotal must equal quantity times unit price")
	}
	return nil
}
