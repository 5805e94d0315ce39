package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/events"
	"github.com/minimarketpos/pos_backend/internal/middleware"
)

var (
	ErrNoLines         = errors.New("transaction must have at least one line")
	ErrProductNotFound = errors.New("product not found")
)

// ledgerService posts and voids sales and purchases. All stock bookkeeping
// happens in the repository transaction; this layer validates input, snapshots
// prices, and emits stock events after commit.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
	publisher    events.Publisher
}

// NewLedgerService creates a new LedgerService. A nil publisher disables
// stock event emission.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade, publisher events.Publisher) portssvc.LedgerSvcFacade {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		publisher:    publisher,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// fetchProductsForLines resolves every referenced product, rejecting unknown IDs.
func (s *ledgerService) fetchProductsForLines(ctx context.Context, lines []dto.PostLineRequest) (map[string]domain.Product, error) {
	productIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	productsMap, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, id := range productIDs {
		if _, found := productsMap[id]; !found {
			return nil, fmt.Errorf("%w: ID %s", ErrProductNotFound, id)
		}
	}
	return productsMap, nil
}

// PostSale atomically persists a sale with its lines and decrements stock.
func (s *ledgerService) PostSale(ctx context.Context, userID string, req dto.PostSaleRequest) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, ErrNoLines
	}

	productsMap, err := s.fetchProductsForLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	saleDate := now
	if req.SaleDate != nil {
		saleDate = req.SaleDate.UTC()
	}
	saleID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	total := decimal.Zero
	domainLines := make([]domain.SaleLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		product := productsMap[lineReq.ProductID]

		// Snapshot the current sale price unless the caller overrides it.
		unitPrice := product.SalePrice
		if lineReq.UnitPrice != nil {
			unitPrice = *lineReq.UnitPrice
		}

		line := domain.SaleLine{
			LineID:      uuid.NewString(),
			SaleID:      saleID,
			ProductID:   lineReq.ProductID,
			Quantity:    lineReq.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    domain.SubtotalOf(lineReq.Quantity, unitPrice),
			AuditFields: audit,
		}
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		total = total.Add(line.Subtotal)
		domainLines[i] = line
	}

	sale := domain.Sale{
		SaleID:      saleID,
		UserID:      userID,
		SaleDate:    saleDate,
		Total:       total,
		State:       domain.StateActive,
		AuditFields: audit,
	}

	if err := s.ledgerRepo.SaveSale(ctx, sale, domainLines); err != nil {
		var insufficientErr *apperrors.InsufficientStockError
		if errors.As(err, &insufficientErr) {
			logger.Warn("Sale rejected for insufficient stock",
				slog.String("product_id", insufficientErr.ProductID),
				slog.Int64("available", insufficientErr.Available),
				slog.Int64("requested", insufficientErr.Requested))
			return nil, err
		}
		logger.Error("Failed to save sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Sale posted",
		slog.String("sale_id", saleID),
		slog.String("user_id", userID),
		slog.Int("line_count", len(domainLines)),
		slog.String("total", total.String()))

	s.publishLineEvents(events.StockSale, saleID, userID, now, domain.SaleLineDeltas(domainLines, -1))

	sale.Lines = domainLines
	return &sale, nil
}

// PostPurchase atomically persists a purchase with its lines and increments stock.
func (s *ledgerService) PostPurchase(ctx context.Context, userID string, req dto.PostPurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, ErrNoLines
	}

	// A purchase must name an existing supplier.
	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, req.SupplierID)
		}
		return nil, fmt.Errorf("failed to verify supplier: %w", err)
	}

	productsMap, err := s.fetchProductsForLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	purchaseDate := now
	if req.PurchaseDate != nil {
		purchaseDate = req.PurchaseDate.UTC()
	}
	purchaseID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	total := decimal.Zero
	domainLines := make([]domain.PurchaseLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		product := productsMap[lineReq.ProductID]

		// Snapshot the current purchase price unless the caller overrides it.
		unitPrice := product.PurchasePrice
		if lineReq.UnitPrice != nil {
			unitPrice = *lineReq.UnitPrice
		}

		line := domain.PurchaseLine{
			LineID:      uuid.NewString(),
			PurchaseID:  purchaseID,
			ProductID:   lineReq.ProductID,
			Quantity:    lineReq.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    domain.SubtotalOf(lineReq.Quantity, unitPrice),
			AuditFields: audit,
		}
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		total = total.Add(line.Subtotal)
		domainLines[i] = line
	}

	purchase := domain.Purchase{
		PurchaseID:   purchaseID,
		UserID:       userID,
		SupplierID:   req.SupplierID,
		PurchaseDate: purchaseDate,
		Total:        total,
		State:        domain.StateActive,
		AuditFields:  audit,
	}

	if err := s.ledgerRepo.SavePurchase(ctx, purchase, domainLines); err != nil {
		logger.Error("Failed to save purchase", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Purchase posted",
		slog.String("purchase_id", purchaseID),
		slog.String("supplier_id", req.SupplierID),
		slog.String("user_id", userID),
		slog.Int("line_count", len(domainLines)),
		slog.String("total", total.String()))

	s.publishLineEvents(events.StockPurchase, purchaseID, userID, now, domain.PurchaseLineDeltas(domainLines, +1))

	purchase.Lines = domainLines
	return &purchase, nil
}

// VoidSale voids an ACTIVE sale, returning each line's units to stock.
func (s *ledgerService) VoidSale(ctx context.Context, userID string, saleID string, reason string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.ledgerRepo.VoidSale(ctx, saleID, reason, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyVoided) {
			logger.Warn("Void rejected, sale is not active", slog.String("sale_id", saleID))
		}
		return err
	}

	logger.Info("Sale voided", slog.String("sale_id", saleID), slog.String("voided_by", userID))

	if lines, err := s.ledgerRepo.FindSaleLines(ctx, saleID); err == nil {
		s.publishLineEvents(events.StockVoidSale, saleID, userID, now, domain.SaleLineDeltas(lines, +1))
	}
	return nil
}

// VoidPurchase voids an ACTIVE purchase, removing each line's units from stock.
func (s *ledgerService) VoidPurchase(ctx context.Context, userID string, purchaseID string, reason string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.ledgerRepo.VoidPurchase(ctx, purchaseID, reason, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyVoided) {
			logger.Warn("Void rejected, purchase is not active", slog.String("purchase_id", purchaseID))
		}
		return err
	}

	logger.Info("Purchase voided", slog.String("purchase_id", purchaseID), slog.String("voided_by", userID))

	if lines, err := s.ledgerRepo.FindPurchaseLines(ctx, purchaseID); err == nil {
		s.publishLineEvents(events.StockVoidPurchase, purchaseID, userID, now, domain.PurchaseLineDeltas(lines, -1))
	}
	return nil
}

// GetSale retrieves a sale header together with its ordered lines.
func (s *ledgerService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.ledgerRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	lines, err := s.ledgerRepo.FindSaleLines(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.Lines = lines
	return sale, nil
}

// GetPurchase retrieves a purchase header together with its ordered lines.
func (s *ledgerService) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.ledgerRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	lines, err := s.ledgerRepo.FindPurchaseLines(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	purchase.Lines = lines
	return purchase, nil
}

// ListSales retrieves a paginated list of sales.
func (s *ledgerService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	sales, nextToken, err := s.ledgerRepo.ListSales(ctx, params.Limit, params.NextToken, params.IncludeVoided)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListSalesResponse(sales, nextToken)
	return &resp, nil
}

// ListPurchases retrieves a paginated list of purchases.
func (s *ledgerService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error) {
	purchases, nextToken, err := s.ledgerRepo.ListPurchases(ctx, params.Limit, params.NextToken, params.IncludeVoided)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListPurchasesResponse(purchases, nextToken)
	return &resp, nil
}

// publishLineEvents emits one stock event per product delta without blocking
// the request path. Event delivery is best effort; the database is the source
// of truth for stock.
func (s *ledgerService) publishLineEvents(eventType events.StockEventType, transactionID, userID string, occurredAt time.Time, deltas map[string]int64) {
	if len(deltas) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		for productID, delta := range deltas {
			event := events.StockEvent{
				EventID:       uuid.NewString(),
				Type:          eventType,
				TransactionID: transactionID,
				ProductID:     productID,
				Delta:         delta,
				UserID:        userID,
				OccurredAt:    occurredAt,
			}
			_ = s.publisher.PublishStockEvent(ctx, event)
		}
	}()
}
