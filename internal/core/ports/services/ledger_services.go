package services

import (
	"context"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/minimarketpos/pos_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for posted transactions.
type LedgerReaderSvc interface {
	// GetSale retrieves a sale header together with its ordered lines.
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)

	// GetPurchase retrieves a purchase header together with its ordered lines.
	GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListSales retrieves a paginated list of sales.
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)

	// ListPurchases retrieves a paginated list of purchases.
	ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error)
}

// LedgerWriterSvc defines the posting and voiding operations.
type LedgerWriterSvc interface {
	// PostSale atomically persists a sale with its lines and decrements stock.
	// Fails with an InsufficientStockError when any line exceeds available stock.
	PostSale(ctx context.Context, userID string, req dto.PostSaleRequest) (*domain.Sale, error)

	// PostPurchase atomically persists a purchase with its lines and increments stock.
	PostPurchase(ctx context.Context, userID string, req dto.PostPurchaseRequest) (*domain.Purchase, error)

	// VoidSale voids an ACTIVE sale, returning each line's units to stock.
	VoidSale(ctx context.Context, userID string, saleID string, reason string) error

	// VoidPurchase voids an ACTIVE purchase, removing each line's units from stock.
	VoidPurchase(ctx context.Context, userID string, purchaseID string, reason string) error
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
