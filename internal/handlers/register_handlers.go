package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/middleware"
	"github.com/minimarketpos/pos_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.User, services.Token)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Delegate route registration to specific handlers, passing required services
	registerProductRoutes(v1, services.Product)
	registerCategoryRoutes(v1, services.Category)
	registerSupplierRoutes(v1, services.Supplier)
	registerUserRoutes(v1, services.User, adminOnly)
	registerLedgerRoutes(v1, services.Ledger, adminOnly)
	registerReportingRoutes(v1, services.Reporting)
}
