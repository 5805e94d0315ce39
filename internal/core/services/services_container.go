package services

import (
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/events"
	"github.com/minimarketpos/pos_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.Product = NewProductService(repos.ProductRepo, repos.CategoryRepo, repos.SupplierRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ProductRepo, repos.SupplierRepo, publisher)
	container.Reporting = NewReportingService(repos.ReportingRepo, cfg.LowStockThreshold)
	container.Token = NewTokenService(cfg)

	return container
}
