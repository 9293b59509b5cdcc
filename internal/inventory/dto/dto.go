package dto

import (
	"time"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/pricing"
)

type MovementFilters struct {
	StoreID      string
	ProductID    string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}

type StockLevelFilters struct {
	StoreID string
	Status  pricing.StockStatus // empty for all
}

// StockLevel is one product's stock picture: active batch, remaining
// quantity across batches and the derived status.
type StockLevel struct {
	Product     model.Product       `json:"product"`
	ActiveBatch *model.Batch        `json:"active_batch"`
	Remaining   float64             `json:"remaining"`
	Status      pricing.StockStatus `json:"status"`
}
