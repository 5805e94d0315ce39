package domain

import "github.com/minimarketpos/pos_backend/internal/apperrors"

// SaleLineDeltas aggregates the per-product stock change of a set of sale
// lines. A product appearing on several lines is accumulated once with the
// summed quantity, so a sufficiency check over the result covers the combined
// demand. Posting uses sign -1, voiding the inverse sign +1.
func SaleLineDeltas(lines []SaleLine, sign int64) map[string]int64 {
	deltas := make(map[string]int64, len(lines))
	for _, line := range lines {
		deltas[line.ProductID] += sign * line.Quantity
	}
	return deltas
}

// PurchaseLineDeltas aggregates the per-product stock change of a set of
// purchase lines. Posting uses sign +1, voiding the inverse sign -1.
func PurchaseLineDeltas(lines []PurchaseLine, sign int64) map[string]int64 {
	deltas := make(map[string]int64, len(lines))
	for _, line := range lines {
		deltas[line.ProductID] += sign * line.Quantity
	}
	return deltas
}

// CheckStockSufficiency verifies that applying the given deltas to the given
// products leaves no stock level negative. Only negative deltas remove stock,
// so positive ones always pass. The first shortfall found is reported as an
// InsufficientStockError carrying the product's name and numbers.
func CheckStockSufficiency(products map[string]Product, deltas map[string]int64) error {
	for productID, delta := range deltas {
		if delta >= 0 {
			continue
		}
		product := products[productID]
		requested := -delta
		if requested > product.Stock {
			return &apperrors.InsufficientStockError{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   requested,
			}
		}
	}
	return nil
}

// EnsureVoidable reports whether a transaction in this state may be voided.
// Only ACTIVE transactions qualify; anything else fails with ErrAlreadyVoided
// so a second void can never re-apply the stock reversal.
func (s TransactionState) EnsureVoidable() error {
	if s != StateActive {
		return apperrors.ErrAlreadyVoided
	}
	return nil
}
