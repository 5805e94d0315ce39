package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	supplierRepo := newPgxSupplierRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, productRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:   productRepo,
		CategoryRepo:  categoryRepo,
		SupplierRepo:  supplierRepo,
		UserRepo:      userRepo,
		LedgerRepo:    ledgerRepo,
		ReportingRepo: reportingRepo,
	}
}
