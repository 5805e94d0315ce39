package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

// categoryService provides catalog operations over categories.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a new category.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

// ListCategories retrieves all categories.
func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

// UpdateCategory updates an existing category.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	now := time.Now().UTC()
	category.LastUpdatedAt = now
	category.LastUpdatedBy = requestingUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID), slog.String("deleted_by", requestingUserID))
	return nil
}
