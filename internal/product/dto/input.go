package dto

import "github.com/tindahan/pricing-service/internal/money"

type CreateProductInput struct {
	StoreID     string
	SKU         string
	Barcode     string
	Name        string
	Description string
	SoldBy      string // "pieces" or "weight"
	UnitAbbrev  string
	IsBulkCost  bool
	ForSale     bool
	RecipeID    string // empty for directly-costed products
	Price       money.Money
	Cost        money.Money
}

type UpdateProductInput struct {
	ID          string
	StoreID     string
	SKU         string
	Barcode     string
	Name        string
	Description string
	SoldBy      string
	UnitAbbrev  string
	IsBulkCost  bool
	ForSale     bool
	RecipeID    string
	IsActive    bool
}

// EditQuoteInput is one user edit to the pricing tuple. Exactly one of
// price, profit amount or profit percentage changed; cost edits come through
// here too but are rejected for recipe-backed products.
type EditQuoteInput struct {
	ProductID   string
	StoreID     string
	EditedField string // "price", "profitAmount", "profitPercent", "cost"
	Value       money.Money
}
