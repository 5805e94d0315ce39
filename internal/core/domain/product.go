package domain

import "github.com/shopspring/decimal"

// Product is a catalog item carrying the current stock level.
// Stock is mutated only by catalog edits and ledger postings; it must never be
// negative after a committed operation.
type Product struct {
	ProductID     string          `json:"productID"` // Primary Key (UUID)
	Barcode       *string         `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	CategoryID    *string         `json:"categoryID,omitempty"` // FK -> Category.categoryID
	SupplierID    *string         `json:"supplierID,omitempty"` // FK -> Supplier.supplierID
	PurchasePrice decimal.Decimal `json:"purchasePrice"`        // Non-negative
	SalePrice     decimal.Decimal `json:"salePrice"`            // Non-negative
	Stock         int64           `json:"stock"`
	AuditFields
}
