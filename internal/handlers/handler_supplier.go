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

// supplierHandler handles HTTP requests related to suppliers.
type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func newSupplierHandler(supplierService portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{
		supplierService: supplierService,
	}
}

// registerSupplierRoutes sets up the routes for supplier management.
func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:supplierID", h.getSupplier)
		suppliers.PUT("/:supplierID", h.updateSupplier)
		suppliers.DELETE("/:supplierID", h.deleteSupplier)
	}
}

// createSupplier godoc
// @Summary Create a new supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body dto.CreateSupplierRequest true "Supplier details"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /suppliers [post]
func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create supplier in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// getSupplier godoc
// @Summary Get a supplier by ID
// @Tags suppliers
// @Produce json
// @Param supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Router /suppliers/{supplierID} [get]
func (h *supplierHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("supplierID")

	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), supplierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		logger.Error("Failed to get supplier from service", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve supplier"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// listSuppliers godoc
// @Summary List all suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {array} dto.SupplierResponse
// @Router /suppliers [get]
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list suppliers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suppliers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponses(suppliers))
}

// updateSupplier godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplierID path string true "Supplier ID"
// @Param supplier body dto.UpdateSupplierRequest true "Fields to update"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} map[string]string "Supplier not found"
// @Router /suppliers/{supplierID} [put]
func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("supplierID")

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), supplierID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		logger.Error("Failed to update supplier in service", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// deleteSupplier godoc
// @Summary Delete a supplier
// @Description Deletes a supplier that is not referenced by recorded purchases
// @Tags suppliers
// @Produce json
// @Param supplierID path string true "Supplier ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Failure 409 {object} map[string]string "Supplier is referenced by purchases"
// @Router /suppliers/{supplierID} [delete]
func (h *supplierHandler) deleteSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("supplierID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), supplierID, requestingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Supplier is referenced by recorded purchases"})
		default:
			logger.Error("Failed to delete supplier in service", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
