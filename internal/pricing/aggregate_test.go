package pricing

import (
	"errors"
	"testing"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
)

func material(cost string, qty float64) model.Material {
	return model.Material{
		Cost:     money.MustParse(cost),
		Quantity: qty,
		Type:     model.MaterialIngredient,
	}
}

func TestAggregateCost(t *testing.T) {
	materials := []model.Material{
		material("2.50", 50), // ₱125
		material("0.75", 4),  // ₱3
		material("12", 0.5),  // ₱6
	}
	got := AggregateCost(materials)
	if !got.Equal(money.MustParse("134")) {
		t.Fatalf("aggregate = %s, want 134", got)
	}

	if !AggregateCost(nil).IsZero() {
		t.Fatal("empty recipe cost is not zero")
	}
}

func TestAggregateCostAdditive(t *testing.T) {
	materials := []model.Material{
		material("1.11", 3),
		material("0.07", 13),
		material("250", 0.004),
		material("9.99", 1),
	}
	whole := AggregateCost(materials)
	for split := 0; split <= len(materials); split++ {
		parts := AggregateCost(materials[:split]).Add(AggregateCost(materials[split:]))
		if !parts.Equal(whole) {
			t.Fatalf("split at %d: %s != %s", split, parts, whole)
		}
	}
}

func TestValidateCostEdit(t *testing.T) {
	direct := model.Product{}
	if err := ValidateCostEdit(direct); err != nil {
		t.Fatalf("direct product rejected cost edit: %v", err)
	}

	recipeID := "r1"
	backed := model.Product{RecipeID: &recipeID}
	if err := ValidateCostEdit(backed); !errors.Is(err, ErrCostDerived) {
		t.Fatalf("recipe-backed product err = %v, want ErrCostDerived", err)
	}
}
