package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByBarcode retrieves a product by its barcode. Serves the
	// scan-code lookup path.
	FindProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)

	// FindProductsByIDs retrieves products for the given IDs, keyed by ID.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves all products, ordered by name.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct inserts a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates catalog fields and stock of an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product. Products referenced by transaction
	// lines cannot be deleted.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductLocker exposes in-transaction product locking for the ledger
// repository. Callers own the surrounding transaction.
type ProductLocker interface {
	// FindProductsByIDsForUpdate locks the given product rows FOR UPDATE and
	// returns them keyed by ID. Missing IDs yield ErrNotFound.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// ApplyStockDeltasInTx adjusts each product's stock by the given signed
	// delta inside the supplied transaction.
	ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int64, updatedBy string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductLocker
}
