package pricing

import (
	"errors"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
)

// ErrCostDerived rejects a direct cost edit on a recipe-backed product,
// whose cost is the aggregate of its materials and read-only to the user.
var ErrCostDerived = errors.New("pricing: cost is derived from recipe materials and cannot be edited directly")

// AggregateCost sums material line costs (per-unit cost times quantity
// consumed) into a recipe's total cost, in exact decimal arithmetic.
func AggregateCost(materials []model.Material) money.Money {
	total := money.Zero
	for _, m := range materials {
		total = total.Add(MaterialLineCost(m.Cost, m.Quantity))
	}
	return total
}

// ValidateCostEdit guards the write path: products whose cost comes from a
// recipe must not accept user-supplied cost values.
func ValidateCostEdit(p model.Product) error {
	if p.RecipeID != nil {
		return ErrCostDerived
	}
	return nil
}
