package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

// productService provides catalog operations over products.
type productService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// validateReferences checks that the optional category and supplier links
// point at existing rows.
func (s *productService) validateReferences(ctx context.Context, categoryID, supplierID *string) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: category %s", apperrors.ErrValidation, *categoryID)
			}
			return err
		}
	}
	if supplierID != nil {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, *supplierID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: supplier %s", apperrors.ErrValidation, *supplierID)
			}
			return err
		}
	}
	return nil
}

// CreateProduct creates a new product.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PurchasePrice.IsNegative() || req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", apperrors.ErrValidation)
	}
	if err := s.validateReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	// Barcodes are unique across the catalog.
	if req.Barcode != nil && *req.Barcode != "" {
		if _, err := s.productRepo.FindProductByBarcode(ctx, *req.Barcode); err == nil {
			return nil, fmt.Errorf("%w: barcode %s", apperrors.ErrDuplicate, *req.Barcode)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		Barcode:       req.Barcode,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		SupplierID:    req.SupplierID,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	return &product, nil
}

// GetProductByID retrieves a product by ID.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

// GetProductByBarcode retrieves a product by barcode. Serves scan lookups.
func (s *productService) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", apperrors.ErrValidation)
	}
	return s.productRepo.FindProductByBarcode(ctx, barcode)
}

// ListProducts retrieves a paginated list of products.
func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx, limit, offset)
}

// UpdateProduct updates an existing product.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	if req.Barcode != nil && *req.Barcode != "" {
		existing, err := s.productRepo.FindProductByBarcode(ctx, *req.Barcode)
		if err == nil && existing.ProductID != productID {
			return nil, fmt.Errorf("%w: barcode %s", apperrors.ErrDuplicate, *req.Barcode)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: purchase price must not be negative", apperrors.ErrValidation)
		}
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: sale price must not be negative", apperrors.ErrValidation)
		}
		product.SalePrice = *req.SalePrice
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", apperrors.ErrValidation)
		}
		product.Stock = *req.Stock
	}

	now := time.Now().UTC()
	product.LastUpdatedAt = now
	product.LastUpdatedBy = requestingUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("product_id", productID), slog.String("error", err.Error()))
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product that is not referenced by any transaction line.
func (s *productService) DeleteProduct(ctx context.Context, productID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Delete rejected, product is referenced by transactions", slog.String("product_id", productID))
		}
		return err
	}

	logger.Info("Product deleted", slog.String("product_id", productID), slog.String("deleted_by", requestingUserID))
	return nil
}
