package repositories

import (
	"context"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for categories.
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// SupplierRepositoryFacade defines persistence operations for suppliers.
type SupplierRepositoryFacade interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	DeleteSupplier(ctx context.Context, supplierID string) error
}
