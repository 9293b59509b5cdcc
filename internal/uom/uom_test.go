package uom

import (
	"errors"
	"math"
	"testing"

	"github.com/tindahan/pricing-service/internal/money"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		from, to Unit
		want     float64
	}{
		{"g to kg", 200, Gram, Kilogram, 0.2},
		{"kg to g", 1.5, Kilogram, Gram, 1500},
		{"mg to g", 500, Milligram, Gram, 0.5},
		{"ml to l", 250, Milliliter, Liter, 0.25},
		{"l to ml", 2, Liter, Milliliter, 2000},
		{"pc to pc", 7, Piece, Piece, 7},
		{"same unit", 42, Gram, Gram, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.qty, tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Convert(%v, %s, %s) = %v, want %v", tt.qty, tt.from.Abbrev, tt.to.Abbrev, got, tt.want)
			}
		})
	}
}

func TestConvertIncompatibleMeasure(t *testing.T) {
	_, err := Convert(100, Gram, Milliliter)
	var incompat *IncompatibleMeasureError
	if !errors.As(err, &incompat) {
		t.Fatalf("err = %v, want IncompatibleMeasureError", err)
	}

	_, err = Convert(1, Piece, Gram)
	if !errors.As(err, &incompat) {
		t.Fatalf("pieces to mass err = %v, want IncompatibleMeasureError", err)
	}

	_, err = ConvertUnitCost(money.MustParse("2.5"), Liter, Kilogram)
	if !errors.As(err, &incompat) {
		t.Fatalf("unit cost err = %v, want IncompatibleMeasureError", err)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]Unit{
		{Gram, Kilogram},
		{Milligram, Kilogram},
		{Milliliter, Liter},
		{Piece, Piece},
	}
	for _, p := range pairs {
		there, err := Convert(123.456, p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		back, err := Convert(there, p[1], p[0])
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(back-123.456) > 1e-9 {
			t.Fatalf("%s<->%s round trip = %v", p[0].Abbrev, p[1].Abbrev, back)
		}
	}
}

func TestConvertUnitCost(t *testing.T) {
	// ₱2.50 per gram is ₱2500 per kilogram.
	perKg, err := ConvertUnitCost(money.MustParse("2.50"), Gram, Kilogram)
	if err != nil {
		t.Fatal(err)
	}
	if !perKg.Equal(money.MustParse("2500")) {
		t.Fatalf("per kg = %s, want 2500", perKg)
	}

	// And back down.
	perG, err := ConvertUnitCost(perKg, Kilogram, Gram)
	if err != nil {
		t.Fatal(err)
	}
	if !perG.Equal(money.MustParse("2.50")) {
		t.Fatalf("per g = %s, want 2.50", perG)
	}
}

func TestLookup(t *testing.T) {
	u, ok := Lookup("kg")
	if !ok || u.Measure != MeasureMass {
		t.Fatalf("Lookup(kg) = %+v ok=%v", u, ok)
	}
	if _, ok := Lookup("stone"); ok {
		t.Fatal("Lookup(stone) should miss")
	}
}
