package mapping

import (
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/minimarketpos/pos_backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:      d.SaleID,
		UserID:      d.UserID,
		SaleDate:    d.SaleDate,
		Total:       d.Total,
		State:       models.TransactionState(d.State),
		VoidReason:  d.VoidReason,
		VoidedBy:    d.VoidedBy,
		VoidedAt:    d.VoidedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:      m.SaleID,
		UserID:      m.UserID,
		SaleDate:    m.SaleDate,
		Total:       m.Total,
		State:       domain.TransactionState(m.State),
		VoidReason:  m.VoidReason,
		VoidedBy:    m.VoidedBy,
		VoidedAt:    m.VoidedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleSlice converts a slice of model Sales to domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}

// ToModelSaleLine converts a domain SaleLine to a model SaleLine
func ToModelSaleLine(d domain.SaleLine) models.SaleLine {
	return models.SaleLine{
		LineID:      d.LineID,
		SaleID:      d.SaleID,
		ProductID:   d.ProductID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Subtotal:    d.Subtotal,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleLine converts a model SaleLine to a domain SaleLine
func ToDomainSaleLine(m models.SaleLine) domain.SaleLine {
	return domain.SaleLine{
		LineID:      m.LineID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleLineSlice converts a slice of model SaleLines to domain SaleLines
func ToDomainSaleLineSlice(ms []models.SaleLine) []domain.SaleLine {
	ds := make([]domain.SaleLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleLine(m)
	}
	return ds
}

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:   d.PurchaseID,
		UserID:       d.UserID,
		SupplierID:   d.SupplierID,
		PurchaseDate: d.PurchaseDate,
		Total:        d.Total,
		State:        models.TransactionState(d.State),
		VoidReason:   d.VoidReason,
		VoidedBy:     d.VoidedBy,
		VoidedAt:     d.VoidedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:   m.PurchaseID,
		UserID:       m.UserID,
		SupplierID:   m.SupplierID,
		PurchaseDate: m.PurchaseDate,
		Total:        m.Total,
		State:        domain.TransactionState(m.State),
		VoidReason:   m.VoidReason,
		VoidedBy:     m.VoidedBy,
		VoidedAt:     m.VoidedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseSlice converts a slice of model Purchases to domain Purchases
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.Purchase {
	ds := make([]domain.Purchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchase(m)
	}
	return ds
}

// ToModelPurchaseLine converts a domain PurchaseLine to a model PurchaseLine
func ToModelPurchaseLine(d domain.PurchaseLine) models.PurchaseLine {
	return models.PurchaseLine{
		LineID:      d.LineID,
		PurchaseID:  d.PurchaseID,
		ProductID:   d.ProductID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Subtotal:    d.Subtotal,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseLine converts a model PurchaseLine to a domain PurchaseLine
func ToDomainPurchaseLine(m models.PurchaseLine) domain.PurchaseLine {
	return domain.PurchaseLine{
		LineID:      m.LineID,
		PurchaseID:  m.PurchaseID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseLineSlice converts a slice of model PurchaseLines to domain PurchaseLines
func ToDomainPurchaseLineSlice(ms []models.PurchaseLine) []domain.PurchaseLine {
	ds := make([]domain.PurchaseLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseLine(m)
	}
	return ds
}
