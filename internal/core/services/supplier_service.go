package services

import (
	"context"
	"errors"
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

// supplierService provides catalog operations over suppliers.
type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.SupplierSvcFacade {
	return &supplierService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

// CreateSupplier creates a new supplier.
func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		logger.Error("Failed to save supplier", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID), slog.String("name", supplier.Name))
	return &supplier, nil
}

// GetSupplierByID retrieves a supplier by ID.
func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

// ListSuppliers retrieves all suppliers.
func (s *supplierService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.supplierRepo.ListSuppliers(ctx)
}

// UpdateSupplier updates an existing supplier.
func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, requestingUserID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	now := time.Now().UTC()
	supplier.LastUpdatedAt = now
	supplier.LastUpdatedBy = requestingUserID

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier unless purchases reference it.
func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.supplierRepo.DeleteSupplier(ctx, supplierID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Delete rejected, supplier is referenced by purchases", slog.String("supplier_id", supplierID))
		}
		return err
	}

	logger.Info("Supplier deleted", slog.String("supplier_id", supplierID), slog.String("deleted_by", requestingUserID))
	return nil
}
