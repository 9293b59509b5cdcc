// Package pricing is the valuation and pricing engine: active-batch
// selection, stock status derivation, bulk cost rollup, the
// price/cost/profit reconciler and recipe cost aggregation. Everything here
// is a pure function over plain model values; callers (usecases, listener)
// own persistence and state.
package pricing

import (
	"time"

	"github.com/tindahan/pricing-service/internal/model"
)

// SelectActiveBatch picks the batch sales deduct from and cost displays read
// from. Depleted batches are skipped; among the rest the earliest non-nil
// expiration wins, otherwise the first in stocking order (FIFO). Returns nil
// when the product is out of stock.
func SelectActiveBatch(batches []model.Batch) *model.Batch {
	var active *model.Batch
	for i := range batches {
		b := &batches[i]
		if b.Quantity == 0 {
			continue
		}
		if active == nil {
			active = b
			continue
		}
		switch {
		case b.ExpirationDate == nil:
			// FIFO fallback never displaces a dated batch.
		case active.ExpirationDate == nil:
			active = b
		case b.ExpirationDate.Before(*active.ExpirationDate):
			active = b
		}
	}
	return active
}

// IsExpired reports whether the batch's expiration date is strictly before
// now. Batches without an expiration date never expire.
func IsExpired(b model.Batch, now time.Time) bool {
	return b.ExpirationDate != nil && b.ExpirationDate.Before(now)
}

// ExpiresWithin reports whether the batch is not yet expired but will expire
// within the lookahead window. Used for "about to expire" warnings.
func ExpiresWithin(b model.Batch, now time.Time, days int) bool {
	if b.ExpirationDate == nil || IsExpired(b, now) {
		return false
	}
	return !b.ExpirationDate.After(now.AddDate(0, 0, days))
}

// StockStatus is the overall stock/expiration state of a product.
type StockStatus string

const (
	StatusNoBatches    StockStatus = "noBatches"
	StatusOutOfStock   StockStatus = "outOfStock"
	StatusExpired      StockStatus = "expired"
	StatusExpiringSoon StockStatus = "expiringSoon"
	StatusLowStock     StockStatus = "lowStock"
	StatusAvailable    StockStatus = "available"
)

// StatusPolicy carries the store-configurable thresholds for status
// derivation.
type StatusPolicy struct {
	LowStockThreshold   float64
	ExpiryLookaheadDays int
}

func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{LowStockThreshold: 10, ExpiryLookaheadDays: 7}
}

// Status derives the stock status of a product from its batches. Statuses
// are evaluated most-urgent first: expiration states outrank low stock.
// Absence of data degrades to the most conservative answer; this never
// fails.
func (p StatusPolicy) Status(batches []model.Batch, now time.Time) StockStatus {
	if len(batches) == 0 {
		return StatusNoBatches
	}

	active := SelectActiveBatch(batches)
	if active == nil {
		return StatusOutOfStock
	}
	if IsExpired(*active, now) {
		return StatusExpired
	}
	if ExpiresWithin(*active, now, p.ExpiryLookaheadDays) {
		return StatusExpiringSoon
	}

	var remaining float64
	for _, b := range batches {
		if !IsExpired(b, now) {
			remaining += b.Quantity
		}
	}
	if remaining <= p.LowStockThreshold {
		return StatusLowStock
	}
	return StatusAvailable
}
