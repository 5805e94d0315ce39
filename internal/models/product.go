package models

import "github.com/shopspring/decimal"

// Product is a row in the products table.
type Product struct {
	ProductID     string          `db:"product_id"`
	Barcode       *string         `db:"barcode"`
	Name          string          `db:"name"`
	CategoryID    *string         `db:"category_id"`
	SupplierID    *string         `db:"supplier_id"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	Stock         int64           `db:"stock"`
	AuditFields
}
