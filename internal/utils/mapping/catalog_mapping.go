package mapping

import (
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/minimarketpos/pos_backend/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}

// ToModelSupplier converts a domain Supplier to a model Supplier
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:  d.SupplierID,
		Name:        d.Name,
		Phone:       d.Phone,
		Address:     d.Address,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:  m.SupplierID,
		Name:        m.Name,
		Phone:       m.Phone,
		Address:     m.Address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSupplierSlice converts a slice of model Suppliers to domain Suppliers
func ToDomainSupplierSlice(ms []models.Supplier) []domain.Supplier {
	ds := make([]domain.Supplier, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSupplier(m)
	}
	return ds
}
