package mapping

import (
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/minimarketpos/pos_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:     d.ProductID,
		Barcode:       d.Barcode,
		Name:          d.Name,
		CategoryID:    d.CategoryID,
		SupplierID:    d.SupplierID,
		PurchasePrice: d.PurchasePrice,
		SalePrice:     d.SalePrice,
		Stock:         d.Stock,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		Barcode:       m.Barcode,
		Name:          m.Name,
		CategoryID:    m.CategoryID,
		SupplierID:    m.SupplierID,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
		Stock:         m.Stock,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
