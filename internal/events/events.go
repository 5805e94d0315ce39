package events

import "time"

// StockEventType identifies the ledger operation that moved stock.
type StockEventType string

const (
	StockSale         StockEventType = "SALE"
	StockPurchase     StockEventType = "PURCHASE"
	StockVoidSale     StockEventType = "VOID_SALE"
	StockVoidPurchase StockEventType = "VOID_PURCHASE"
)

// StockEvent is published once per transaction line after a ledger operation
// commits. Delta is the signed stock change applied to the product.
type StockEvent struct {
	EventID       string         `json:"event_id"`
	Type          StockEventType `json:"type"`
	TransactionID string         `json:"transaction_id"`
	ProductID     string         `json:"product_id"`
	Delta         int64          `json:"delta"`
	UserID        string         `json:"user_id"`
	OccurredAt    time.Time      `json:"occurred_at"`
}
