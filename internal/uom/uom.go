// Package uom holds the canonical measurement units and conversion between
// them. Conversion is only defined between units of the same measure;
// crossing measures (e.g. grams to milliliters) is a programming error
// surfaced as IncompatibleMeasureError, never a silent pass-through.
package uom

import (
	"fmt"

	"github.com/tindahan/pricing-service/internal/money"
)

// Measure is a dimension of measurement. Units must share a measure to be
// convertible.
type Measure string

const (
	MeasurePieces Measure = "pieces"
	MeasureMass   Measure = "mass"
	MeasureVolume Measure = "volume"
)

// Unit is a measurement unit. factor is the multiplier to the base unit of
// its measure (g for mass, ml for volume, pc for pieces).
type Unit struct {
	Abbrev  string
	Label   string
	Measure Measure

	factor float64
}

var (
	Piece = Unit{Abbrev: "pc", Label: "piece", Measure: MeasurePieces, factor: 1}

	Milligram = Unit{Abbrev: "mg", Label: "milligram", Measure: MeasureMass, factor: 0.001}
	Gram      = Unit{Abbrev: "g", Label: "gram", Measure: MeasureMass, factor: 1}
	Kilogram  = Unit{Abbrev: "kg", Label: "kilogram", Measure: MeasureMass, factor: 1000}

	Milliliter = Unit{Abbrev: "ml", Label: "milliliter", Measure: MeasureVolume, factor: 1}
	Liter      = Unit{Abbrev: "l", Label: "liter", Measure: MeasureVolume, factor: 1000}
)

var units = []Unit{Piece, Milligram, Gram, Kilogram, Milliliter, Liter}

// All returns the canonical unit set in a stable order.
func All() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// Lookup resolves a unit by abbreviation, for data arriving at the API
// boundary.
func Lookup(abbrev string) (Unit, bool) {
	for _, u := range units {
		if u.Abbrev == abbrev {
			return u, true
		}
	}
	return Unit{}, false
}

// IncompatibleMeasureError reports a conversion attempt across measures.
type IncompatibleMeasureError struct {
	From Unit
	To   Unit
}

func (e *IncompatibleMeasureError) Error() string {
	return fmt.Sprintf("uom: cannot convert %s (%s) to %s (%s)",
		e.From.Abbrev, e.From.Measure, e.To.Abbrev, e.To.Measure)
}

// Convert converts a quantity expressed in from-units into to-units.
// Pieces only convert to pieces with factor 1.
func Convert(qty float64, from, to Unit) (float64, error) {
	if from.Measure != to.Measure {
		return 0, &IncompatibleMeasureError{From: from, To: to}
	}
	if from.Abbrev == to.Abbrev {
		return qty, nil
	}
	return qty * from.factor / to.factor, nil
}

// ConvertUnitCost re-expresses a per-unit cost in another unit of the same
// measure. Cost scales inversely to quantity: a cost per gram becomes 1000x
// larger per kilogram.
func ConvertUnitCost(costPer money.Money, from, to Unit) (money.Money, error) {
	if from.Measure != to.Measure {
		return money.Zero, &IncompatibleMeasureError{From: from, To: to}
	}
	if from.Abbrev == to.Abbrev {
		return costPer, nil
	}
	return costPer.MulFloat(to.factor / from.factor), nil
}
