package pricing

import (
	"errors"
	"testing"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/uom"
)

func TestCostPerUnit(t *testing.T) {
	// Bulk batch: ₱500 over 200g is ₱2.50/g.
	got := CostPerUnit(money.MustParse("500"), 200)
	if !got.Equal(money.MustParse("2.50")) {
		t.Fatalf("500/200 = %s, want 2.50", got)
	}

	// Zero quantity is a routine state, not a division error.
	if got := CostPerUnit(money.MustParse("500"), 0); !got.IsZero() {
		t.Fatalf("cost per unit of empty batch = %s, want 0", got)
	}

	// Rounds to 4 places.
	got = CostPerUnit(money.MustParse("10"), 3)
	if got.String() != "3.3333" {
		t.Fatalf("10/3 = %s, want 3.3333", got)
	}
}

func TestBatchUnitCost(t *testing.T) {
	b := model.Batch{Cost: money.MustParse("500"), Quantity: 200}

	if got := BatchUnitCost(b, true); !got.Equal(money.MustParse("2.50")) {
		t.Fatalf("bulk unit cost = %s, want 2.50", got)
	}
	// Non-bulk products record cost per item; no division.
	if got := BatchUnitCost(b, false); !got.Equal(money.MustParse("500")) {
		t.Fatalf("flat unit cost = %s, want 500", got)
	}
}

func TestMaterialLineCostWithConversion(t *testing.T) {
	// Batch stocked in grams at ₱2.50/g, material consumes 0.05kg.
	perKg, err := MaterialUnitCost(money.MustParse("2.50"), uom.Gram, uom.Kilogram)
	if err != nil {
		t.Fatal(err)
	}
	if !perKg.Equal(money.MustParse("2500")) {
		t.Fatalf("unit cost per kg = %s, want 2500", perKg)
	}
	line := MaterialLineCost(perKg, 0.05)
	if !line.Equal(money.MustParse("125")) {
		t.Fatalf("line cost = %s, want 125", line)
	}

	// Same consumption expressed in grams must cost the same.
	line = MaterialLineCost(money.MustParse("2.50"), 50)
	if !line.Equal(money.MustParse("125")) {
		t.Fatalf("line cost in grams = %s, want 125", line)
	}
}

func TestMaterialUnitCostIncompatible(t *testing.T) {
	_, err := MaterialUnitCost(money.MustParse("2.50"), uom.Gram, uom.Liter)
	var incompat *uom.IncompatibleMeasureError
	if !errors.As(err, &incompat) {
		t.Fatalf("err = %v, want IncompatibleMeasureError", err)
	}
}
