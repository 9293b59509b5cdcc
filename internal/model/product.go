package model

import (
	"time"

	"github.com/tindahan/pricing-service/internal/money"
)

// SoldBy is how a product is measured at the point of sale.
type SoldBy string

const (
	SoldByPieces SoldBy = "pieces"
	SoldByWeight SoldBy = "weight"
)

type Product struct {
	BaseModel
	StoreID     string  `db:"store_id" json:"store_id"`
	SKU         string  `db:"sku" json:"sku"`
	Barcode     *string `db:"barcode" json:"barcode"` // Nullable
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`

	SoldBy     SoldBy `db:"sold_by" json:"sold_by"`
	UnitAbbrev string `db:"unit_abbrev" json:"unit_abbrev"` // stocking unit (pc, g, kg, ml, l)
	IsBulkCost bool   `db:"is_bulk_cost" json:"is_bulk_cost"`
	ForSale    bool   `db:"for_sale" json:"for_sale"`
	RecipeID   *string `db:"recipe_id" json:"recipe_id"` // set when cost derives from a recipe

	// Pricing fields. Cost is authoritative input for directly-sold products
	// and derived (read-only) for recipe-backed ones; price/profit fields are
	// kept consistent by the pricing reconciler, never edited independently.
	Price         money.Money `db:"price" json:"price"`
	Cost          money.Money `db:"cost" json:"cost"`
	ProfitAmount  money.Money `db:"profit_amount" json:"profit_amount"`
	ProfitPercent money.Money `db:"profit_percent" json:"profit_percent"`

	IsActive bool `db:"is_active" json:"is_active"`

	Batches []Batch `db:"-" json:"batches"` // loaded separately, stocking order
}

// Batch is one stocking of a product. A depleted batch (quantity 0) is kept
// for history but is never selected as active again.
type Batch struct {
	BaseModel
	ProductID      string      `db:"product_id" json:"product_id"`
	Name           string      `db:"name" json:"name"`
	Cost           money.Money `db:"cost" json:"cost"` // total batch cost when bulk, per-item otherwise
	Quantity       float64     `db:"quantity" json:"quantity"`
	UnitAbbrev     string      `db:"unit_abbrev" json:"unit_abbrev"`
	CostPerUnit    money.Money `db:"cost_per_unit" json:"cost_per_unit"` // derived, recomputed on cost/quantity change
	ExpirationDate *time.Time  `db:"expiration_date" json:"expiration_date"`
	Seq            int         `db:"seq" json:"seq"` // stocking order within the product
}
