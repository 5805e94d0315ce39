package repositories

import (
	"context"
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a sale header by its unique identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSaleLines retrieves the ordered line items of a sale.
	FindSaleLines(ctx context.Context, saleID string) ([]domain.SaleLine, error)

	// ListSales retrieves a paginated list of sales using token-based pagination.
	// It returns the sales, a token for the next page, and an error.
	ListSales(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sale data
type SaleWriter interface {
	// SaveSale persists a sale header and its lines and applies the per-product
	// stock decrements within a single database transaction. All referenced
	// products are locked before any stock check; a line exceeding the locked
	// stock aborts everything with an InsufficientStockError.
	SaveSale(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error

	// VoidSale marks an ACTIVE sale as VOIDED and restores each line's stock
	// within a single database transaction. A sale that is not ACTIVE is
	// rejected with ErrAlreadyVoided.
	VoidSale(ctx context.Context, saleID string, reason string, voidedBy string, voidedAt time.Time) error
}

// PurchaseReader defines read operations for purchase data
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase header by its unique identifier.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// FindPurchaseLines retrieves the ordered line items of a purchase.
	FindPurchaseLines(ctx context.Context, purchaseID string) ([]domain.PurchaseLine, error)

	// ListPurchases retrieves a paginated list of purchases using token-based pagination.
	ListPurchases(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.Purchase, *string, error)
}

// PurchaseWriter defines write operations for purchase data
type PurchaseWriter interface {
	// SavePurchase persists a purchase header and its lines and applies the
	// per-product stock increments within a single database transaction.
	SavePurchase(ctx context.Context, purchase domain.Purchase, lines []domain.PurchaseLine) error

	// VoidPurchase marks an ACTIVE purchase as VOIDED and removes each line's
	// stock within a single database transaction. Voiding fails with an
	// InsufficientStockError when the inbound units have already been sold.
	VoidPurchase(ctx context.Context, purchaseID string, reason string, voidedBy string, voidedAt time.Time) error
}

// LedgerRepositoryFacade combines all sale and purchase repository interfaces.
type LedgerRepositoryFacade interface {
	SaleReader
	SaleWriter
	PurchaseReader
	PurchaseWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
