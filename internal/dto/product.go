package dto

import (
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Barcode       *string         `json:"barcode,omitempty"`
	Name          string          `json:"name" binding:"required"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Stock         int64           `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProductRequest struct {
	Barcode       *string          `json:"barcode,omitempty"`
	Name          *string          `json:"name,omitempty"`
	CategoryID    *string          `json:"categoryID,omitempty"`
	SupplierID    *string          `json:"supplierID,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	Stock         *int64           `json:"stock,omitempty"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Barcode       *string         `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Stock         int64           `json:"stock"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Barcode:       p.Barcode,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
	}
}

// ToListProductsResponse converts a slice of domain.Product to ListProductsResponse.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(&p)
	}
	return ListProductsResponse{Products: responses}
}
