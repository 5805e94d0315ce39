package domain

// Category groups products for browsing and reporting.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	Name       string `json:"name"`
	AuditFields
}

// Supplier is the counterpart of a purchase.
type Supplier struct {
	SupplierID string `json:"supplierID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Phone      string `json:"phone"`   // Nullable
	Address    string `json:"address"` // Nullable
	AuditFields
}
