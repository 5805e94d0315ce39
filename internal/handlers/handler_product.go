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

// productHandler handles HTTP requests related to the product catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{
		productService: productService,
	}
}

// registerProductRoutes sets up the routes for product management.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/barcode/:code", h.getProductByBarcode)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deleteProduct)
	}
}

// createProduct godoc
// @Summary Create a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Barcode already in use"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create product in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	logger.Info("Product created successfully", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to get product from service", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// getProductByBarcode godoc
// @Summary Get a product by barcode
// @Description Resolves a scanned barcode to a product
// @Tags products
// @Produce json
// @Param code path string true "Barcode"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/barcode/{code} [get]
func (h *productHandler) getProductByBarcode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	product, err := h.productService.GetProductByBarcode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to get product by barcode", slog.String("error", err.Error()), slog.String("barcode", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProductsResponse
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list products from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductsResponse(products))
}

// updateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Barcode already in use"
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update product in service", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Removes a product that has no recorded transactions
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Product is referenced by transactions"
// @Router /products/{productID} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.productService.DeleteProduct(c.Request.Context(), productID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Product is referenced by recorded transactions"})
		default:
			logger.Error("Failed to delete product in service", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
