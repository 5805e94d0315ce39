package dto

import (
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostLineRequest is one (product, quantity, unit price) tuple of a posting.
// UnitPrice is optional; when omitted the product's current price is
// snapshotted by the service.
type PostLineRequest struct {
	ProductID string           `json:"productID" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// PostSaleRequest defines the payload for posting a sale.
type PostSaleRequest struct {
	SaleDate *time.Time        `json:"saleDate,omitempty"` // Defaults to now
	Lines    []PostLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PostPurchaseRequest defines the payload for posting a purchase.
type PostPurchaseRequest struct {
	SupplierID   string            `json:"supplierID" binding:"required"`
	PurchaseDate *time.Time        `json:"purchaseDate,omitempty"`
	Lines        []PostLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// VoidTransactionRequest defines the payload for voiding a sale or purchase.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// LineResponse defines the data returned for a transaction line.
type LineResponse struct {
	LineID    string          `json:"lineID"`
	ProductID string          `json:"productID"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines the data returned for a sale header.
type SaleResponse struct {
	SaleID     string          `json:"saleID"`
	UserID     string          `json:"userID"`
	SaleDate   time.Time       `json:"saleDate"`
	Total      decimal.Decimal `json:"total"`
	State      string          `json:"state"`
	VoidReason string          `json:"voidReason,omitempty"`
	Lines      []LineResponse  `json:"lines,omitempty"`
}

// PurchaseResponse defines the data returned for a purchase header.
type PurchaseResponse struct {
	PurchaseID   string          `json:"purchaseID"`
	UserID       string          `json:"userID"`
	SupplierID   string          `json:"supplierID"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Total        decimal.Decimal `json:"total"`
	State        string          `json:"state"`
	VoidReason   string          `json:"voidReason,omitempty"`
	Lines        []LineResponse  `json:"lines,omitempty"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
	IncludeVoided bool    `form:"includeVoided,default=false"`
}

// ListSalesResponse wraps a page of sales.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ListPurchasesParams defines query parameters for listing purchases.
type ListPurchasesParams struct {
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
	IncludeVoided bool    `form:"includeVoided,default=false"`
}

// ListPurchasesResponse wraps a page of purchases.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToSaleLineResponse converts a domain.SaleLine to LineResponse DTO.
func ToSaleLineResponse(l *domain.SaleLine) LineResponse {
	return LineResponse{
		LineID:    l.LineID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Subtotal,
	}
}

// ToPurchaseLineResponse converts a domain.PurchaseLine to LineResponse DTO.
func ToPurchaseLineResponse(l *domain.PurchaseLine) LineResponse {
	return LineResponse{
		LineID:    l.LineID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Subtotal:  l.Subtotal,
	}
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:     s.SaleID,
		UserID:     s.UserID,
		SaleDate:   s.SaleDate,
		Total:      s.Total,
		State:      string(s.State),
		VoidReason: s.VoidReason,
	}
	if len(s.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(s.Lines))
		for i, l := range s.Lines {
			resp.Lines[i] = ToSaleLineResponse(&l)
		}
	}
	return resp
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		UserID:       p.UserID,
		SupplierID:   p.SupplierID,
		PurchaseDate: p.PurchaseDate,
		Total:        p.Total,
		State:        string(p.State),
		VoidReason:   p.VoidReason,
	}
	if len(p.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(p.Lines))
		for i, l := range p.Lines {
			resp.Lines[i] = ToPurchaseLineResponse(&l)
		}
	}
	return resp
}

// ToListSalesResponse converts a page of domain.Sale to ListSalesResponse.
func ToListSalesResponse(sales []domain.Sale, nextToken *string) ListSalesResponse {
	responses := make([]SaleResponse, len(sales))
	for i, s := range sales {
		responses[i] = ToSaleResponse(&s)
	}
	return ListSalesResponse{Sales: responses, NextToken: nextToken}
}

// ToListPurchasesResponse converts a page of domain.Purchase to ListPurchasesResponse.
func ToListPurchasesResponse(purchases []domain.Purchase, nextToken *string) ListPurchasesResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		responses[i] = ToPurchaseResponse(&p)
	}
	return ListPurchasesResponse{Purchases: responses, NextToken: nextToken}
}
