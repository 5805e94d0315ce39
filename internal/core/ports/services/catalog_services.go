package services

import (
	"context"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/minimarketpos/pos_backend/internal/dto"
)

// ProductReaderSvc defines read operations for the product catalog.
type ProductReaderSvc interface {
	// GetProductByID retrieves a product by ID.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetProductByBarcode retrieves a product by barcode. Serves scan lookups.
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for the product catalog.
type ProductWriterSvc interface {
	// CreateProduct creates a new product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct updates an existing product.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error)

	// DeleteProduct removes a product that is not referenced by any transaction line.
	DeleteProduct(ctx context.Context, productID string, requestingUserID string) error
}

// ProductSvcFacade combines all product service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}

// CategorySvcFacade defines operations over the category catalog.
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string, requestingUserID string) error
}

// SupplierSvcFacade defines operations over the supplier catalog.
type SupplierSvcFacade interface {
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, requestingUserID string) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string, requestingUserID string) error
}
