package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/core/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for posting, voiding and reading
// sales and purchases.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// registerLedgerRoutes sets up the routes for the transaction ledger.
// Posting purchases and voiding anything is restricted to administrators.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, adminOnly gin.HandlerFunc) {
	h := newLedgerHandler(ledgerService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.postSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.POST("/:saleID/void", adminOnly, h.voidSale)
	}

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", adminOnly, h.postPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:purchaseID", h.getPurchase)
		purchases.POST("/:purchaseID/void", adminOnly, h.voidPurchase)
	}
}

// postSale godoc
// @Summary Post a sale
// @Description Atomically records a sale with its lines and decrements stock
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.PostSaleRequest true "Sale lines"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Unknown product"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to post sale"
// @Router /sales [post]
func (h *ledgerHandler) postSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.ledgerService.PostSale(c.Request.Context(), userID, req)
	if err != nil {
		var stockErr *apperrors.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			logger.Warn("Sale rejected for insufficient stock",
				slog.String("product_id", stockErr.ProductID),
				slog.Int64("available", stockErr.Available),
				slog.Int64("requested", stockErr.Requested))
			c.JSON(http.StatusConflict, gin.H{
				"error":       stockErr.Error(),
				"productID":   stockErr.ProductID,
				"productName": stockErr.ProductName,
				"available":   stockErr.Available,
				"requested":   stockErr.Requested,
			})
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, apperrors.ErrNotFound):
			// Covers a product deleted between the price lookup and the
			// repository's lock of the rows
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoLines), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post sale in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post sale"})
		}
		return
	}

	logger.Info("Sale posted successfully", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// postPurchase godoc
// @Summary Post a purchase
// @Description Atomically records a stock intake with its lines and increments stock
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.PostPurchaseRequest true "Purchase lines"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Unknown product or supplier"
// @Failure 500 {object} map[string]string "Failed to post purchase"
// @Router /purchases [post]
func (h *ledgerHandler) postPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purchase, err := h.ledgerService.PostPurchase(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoLines), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post purchase in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post purchase"})
		}
		return
	}

	logger.Info("Purchase posted successfully", slog.String("purchase_id", purchase.PurchaseID))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// getSale godoc
// @Summary Get a sale with its lines
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Router /sales/{saleID} [get]
func (h *ledgerHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	sale, err := h.ledgerService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		logger.Error("Failed to get sale from service", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// getPurchase godoc
// @Summary Get a purchase with its lines
// @Tags purchases
// @Produce json
// @Param purchaseID path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID} [get]
func (h *ledgerHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	purchase, err := h.ledgerService.GetPurchase(c.Request.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		logger.Error("Failed to get purchase from service", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// listSales godoc
// @Summary List sales
// @Description Token-paginated sale headers, newest first. Voided sales are
// @Description excluded unless includeVoided is set.
// @Tags sales
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Param includeVoided query bool false "Include voided sales" default(false)
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Router /sales [get]
func (h *ledgerHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.ListSales(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list sales from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// listPurchases godoc
// @Summary List purchases
// @Description Token-paginated purchase headers, newest first. Voided
// @Description purchases are excluded unless includeVoided is set.
// @Tags purchases
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Param includeVoided query bool false "Include voided purchases" default(false)
// @Success 200 {object} dto.ListPurchasesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Router /purchases [get]
func (h *ledgerHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list purchases from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// voidSale godoc
// @Summary Void a sale
// @Description Marks an ACTIVE sale VOIDED and returns its units to stock
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param void body dto.VoidTransactionRequest true "Void reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale already voided"
// @Router /sales/{saleID}/void [post]
func (h *ledgerHandler) voidSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Void reason is required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.VoidSale(c.Request.Context(), userID, saleID, req.Reason); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		case errors.Is(err, apperrors.ErrAlreadyVoided):
			c.JSON(http.StatusConflict, gin.H{"error": "Sale is already voided"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to void sale in service", slog.String("error", err.Error()), slog.String("sale_id", saleID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void sale"})
		}
		return
	}

	logger.Info("Sale voided successfully", slog.String("sale_id", saleID), slog.String("voided_by", userID))
	c.Status(http.StatusNoContent)
}

// voidPurchase godoc
// @Summary Void a purchase
// @Description Marks an ACTIVE purchase VOIDED and removes its units from stock
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchaseID path string true "Purchase ID"
// @Param void body dto.VoidTransactionRequest true "Void reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 409 {object} map[string]string "Already voided or stock too low"
// @Router /purchases/{purchaseID}/void [post]
func (h *ledgerHandler) voidPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Void reason is required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.VoidPurchase(c.Request.Context(), userID, purchaseID, req.Reason); err != nil {
		var stockErr *apperrors.InsufficientStockError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		case errors.Is(err, apperrors.ErrAlreadyVoided):
			c.JSON(http.StatusConflict, gin.H{"error": "Purchase is already voided"})
		case errors.As(err, &stockErr):
			// Voiding this intake would drive stock negative
			c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to void purchase in service", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void purchase"})
		}
		return
	}

	logger.Info("Purchase voided successfully", slog.String("purchase_id", purchaseID), slog.String("voided_by", userID))
	c.Status(http.StatusNoContent)
}
