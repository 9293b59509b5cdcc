package dto

import (
	"time"

	"github.com/tindahan/pricing-service/internal/money"
)

// StockBatchInput creates a new batch for a product (initial stocking or
// restock with a fresh purchase).
type StockBatchInput struct {
	StoreID        string
	ProductID      string
	Name           string
	Cost           money.Money // total batch cost for bulk products, per-item otherwise
	Quantity       float64
	UnitAbbrev     string
	ExpirationDate *time.Time
	UserID         string
}

// UpdateBatchInput corrects a batch's recorded fields. Changing cost or
// quantity re-derives the per-unit cost.
type UpdateBatchInput struct {
	StoreID        string
	ProductID      string
	BatchID        string
	Name           string
	Cost           money.Money
	Quantity       float64
	ExpirationDate *time.Time
	Reason         string
	UserID         string
}

// AdjustBatchInput applies a signed quantity delta to one batch (shrinkage,
// count correction).
type AdjustBatchInput struct {
	StoreID        string
	ProductID      string
	BatchID        string
	QuantityChange float64
	Reason         string
	ReferenceID    string
	ReferenceType  string // 'manual_adjustment', 'sale', 'return'
	UserID         string
}

// DeductSaleInput removes sold quantity from the product's active batch.
type DeductSaleInput struct {
	StoreID   string
	ProductID string
	Quantity  float64
	OrderID   string
}
