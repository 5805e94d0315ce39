package models

// Category is a row in the categories table.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	AuditFields
}

// Supplier is a row in the suppliers table.
type Supplier struct {
	SupplierID string `db:"supplier_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Address    string `db:"address"`
	AuditFields
}
