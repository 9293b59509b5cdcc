package dto

import (
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/pricing"
)

type ProductFilters struct {
	StoreID     string
	ForSale     *bool
	IsActive    *bool
	SearchQuery string // name, sku, barcode
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

// ProductView is a product together with its engine-derived fields. Derived
// values are computed on read, never trusted from storage.
type ProductView struct {
	Product     model.Product       `json:"product"`
	ActiveBatch *model.Batch        `json:"active_batch"`
	CostPerUnit money.Money         `json:"cost_per_unit"`
	StockStatus pricing.StockStatus `json:"stock_status"`
	Quote       pricing.Quote       `json:"quote"`
}
