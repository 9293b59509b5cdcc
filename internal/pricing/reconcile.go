package pricing

import "github.com/tindahan/pricing-service/internal/money"

// EditedField names which member of the quote the user last changed. Cost is
// never edited through the reconciler; it is an input supplied by batch
// costing or recipe aggregation.
type EditedField string

const (
	FieldPrice         EditedField = "price"
	FieldProfitAmount  EditedField = "profitAmount"
	FieldProfitPercent EditedField = "profitPercent"
)

// Quote is the mutually-consistent pricing tuple of a product.
// PercentAvailable is false when cost is zero and the percentage is
// undefined; the UI renders a placeholder instead of a number then.
type Quote struct {
	Price         money.Money `json:"price"`
	Cost          money.Money `json:"cost"`
	ProfitAmount  money.Money `json:"profit_amount"`
	ProfitPercent money.Money `json:"profit_percent"`

	PercentAvailable bool `json:"percent_available"`
}

var hundred = money.FromInt(100)

// Reconcile recomputes the two non-edited members of the quote from cost and
// the edited field. Pure and stateless: callers pass the full current quote,
// the edited value already set, and use the returned quote.
//
// The percentage always derives from the cost supplied in this call, never a
// previously observed one.
func Reconcile(q Quote, edited EditedField) Quote {
	switch edited {
	case FieldProfitAmount:
		q.Price = q.Cost.Add(q.ProfitAmount)
	case FieldProfitPercent:
		q.ProfitAmount = q.Cost.Mul(q.ProfitPercent)
		q.ProfitAmount, _ = q.ProfitAmount.Div(hundred)
		q.Price = q.Cost.Add(q.ProfitAmount)
	default: // FieldPrice
		q.ProfitAmount = q.Price.Sub(q.Cost)
	}

	if edited != FieldProfitPercent {
		ratio, ok := q.ProfitAmount.Div(q.Cost)
		if ok {
			q.ProfitPercent = ratio.Mul(hundred)
		} else {
			q.ProfitPercent = money.Zero
		}
		q.PercentAvailable = ok
	} else {
		q.PercentAvailable = !q.Cost.IsZero()
	}

	return q
}
