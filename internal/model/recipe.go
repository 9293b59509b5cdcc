package model

import "github.com/tindahan/pricing-service/internal/money"

// MaterialType distinguishes consumable ingredients from other recipe line
// items (packaging, labels).
type MaterialType string

const (
	MaterialIngredient MaterialType = "ingredient"
	MaterialOther      MaterialType = "other"
)

type Recipe struct {
	BaseModel
	StoreID string `db:"store_id" json:"store_id"`
	Name    string `db:"name" json:"name"`

	// Cost is the aggregate of material line costs. It is persisted for
	// listing but always recomputed from materials before use; the stored
	// value is never authoritative.
	Cost money.Money `db:"cost" json:"cost"`

	Materials []Material `db:"-" json:"materials"`
}

// Material is a recipe line item referencing a product. Cost is the
// per-unit-of-measurement cost, derived from the source product's active
// batch converted into the material's chosen unit at assignment time.
type Material struct {
	BaseModel
	RecipeID   string       `db:"recipe_id" json:"recipe_id"`
	ProductID  string       `db:"product_id" json:"product_id"`
	Quantity   float64      `db:"quantity" json:"quantity"`
	UnitAbbrev string       `db:"unit_abbrev" json:"unit_abbrev"`
	Cost       money.Money  `db:"cost" json:"cost"`
	Type       MaterialType `db:"type" json:"type"`

	Product *Product `db:"-" json:"product,omitempty"` // joined data
}
