package dto

import "github.com/minimarketpos/pos_backend/internal/core/domain"

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name}
}

// ToCategoryResponses converts a slice of domain.Category to []CategoryResponse.
func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		responses[i] = ToCategoryResponse(&c)
	}
	return responses
}

// CreateSupplierRequest defines the payload for creating a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateSupplierRequest defines the data allowed for updating a supplier.
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID: s.SupplierID,
		Name:       s.Name,
		Phone:      s.Phone,
		Address:    s.Address,
	}
}

// ToSupplierResponses converts a slice of domain.Supplier to []SupplierResponse.
func ToSupplierResponses(ss []domain.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(ss))
	for i, s := range ss {
		responses[i] = ToSupplierResponse(&s)
	}
	return responses
}
