package pricing

import (
	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
	"github.com/tindahan/pricing-service/internal/uom"
)

// CostPerUnit rolls a bulk purchase cost up into a per-unit cost. A zero
// quantity yields zero cost, not infinity; empty batches are a routine data
// entry state.
func CostPerUnit(totalCost money.Money, quantity float64) money.Money {
	per, ok := totalCost.DivFloat(quantity)
	if !ok {
		return money.Zero
	}
	return per
}

// BatchUnitCost is the cost of one stocking unit from a batch. Bulk-costed
// batches divide total cost by quantity; otherwise the recorded cost is
// already per item.
func BatchUnitCost(b model.Batch, bulkCost bool) money.Money {
	if bulkCost {
		return CostPerUnit(b.Cost, b.Quantity)
	}
	return b.Cost
}

// MaterialUnitCost re-expresses a batch's per-unit cost in the unit a
// material consumes it in. Fails with IncompatibleMeasureError when the
// units do not share a measure.
func MaterialUnitCost(batchCostPerUnit money.Money, batchUnit, materialUnit uom.Unit) (money.Money, error) {
	return uom.ConvertUnitCost(batchCostPerUnit, batchUnit, materialUnit)
}

// MaterialLineCost is the cost of one material line: per-unit cost in the
// material's unit times the quantity consumed.
func MaterialLineCost(unitCost money.Money, quantity float64) money.Money {
	return unitCost.MulFloat(quantity)
}
