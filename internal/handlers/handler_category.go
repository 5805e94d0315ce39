package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

// categoryHandler handles HTTP requests related to product categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(categoryService portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService: categoryService,
	}
}

// registerCategoryRoutes sets up the routes for category management.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.GET("/:categoryID", h.getCategory)
		categories.PUT("/:categoryID", h.updateCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a new category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Category name already exists"
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create category in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// getCategory godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{categoryID} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("categoryID")

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		logger.Error("Failed to get category from service", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list categories from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{categoryID} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("categoryID")

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update category in service", slog.String("error", err.Error()), slog.String("category_id", categoryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Deletes a category. Products keep running with no category.
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("categoryID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		logger.Error("Failed to delete category in service", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}
