// Package money provides exact decimal arithmetic for currency amounts.
// Values are kept at 4 decimal places internally and rendered at 2 for
// display, so repeated derivations (cost per unit, profit splits) do not
// accumulate binary floating-point error.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// InternalScale is the precision amounts are rounded to after every operation.
const InternalScale = 4

// DisplayScale is the precision used when rendering currency to users.
const DisplayScale = 2

// Money is an exact decimal currency amount.
//
// The zero value is ready to use and equals zero pesos.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New builds an amount from a decimal.
func New(d decimal.Decimal) Money {
	return Money{d: d.Round(InternalScale)}
}

// FromFloat converts a float at the input-parsing boundary. Once an amount
// exists it must stay in Money arithmetic.
func FromFloat(f float64) Money {
	return New(decimal.NewFromFloat(f))
}

// FromInt builds an amount from whole currency units.
func FromInt(n int64) Money {
	return Money{d: decimal.NewFromInt(n)}
}

// Parse reads an amount from its string form, e.g. "2.50".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return New(d), nil
}

// MustParse is Parse for constants in tests and seed data.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return New(m.d.Add(o.d)) }
func (m Money) Sub(o Money) Money { return New(m.d.Sub(o.d)) }

// Mul multiplies by another exact decimal amount.
func (m Money) Mul(o Money) Money { return New(m.d.Mul(o.d)) }

// MulFloat scales by a quantity supplied as float64 (quantities arrive from
// the API as floats; the product is immediately re-rounded to InternalScale).
func (m Money) MulFloat(q float64) Money {
	return New(m.d.Mul(decimal.NewFromFloat(q)))
}

// Div divides by an exact decimal amount. Division by zero returns Zero and
// ok=false; callers decide whether that is a sentinel or a bug.
func (m Money) Div(o Money) (Money, bool) {
	if o.d.IsZero() {
		return Zero, false
	}
	return New(m.d.DivRound(o.d, InternalScale)), true
}

// DivFloat divides by a float64 quantity with the same zero guard.
func (m Money) DivFloat(q float64) (Money, bool) {
	if q == 0 {
		return Zero, false
	}
	return New(m.d.DivRound(decimal.NewFromFloat(q), InternalScale)), true
}

func (m Money) IsZero() bool       { return m.d.IsZero() }
func (m Money) IsNegative() bool   { return m.d.IsNegative() }
func (m Money) Cmp(o Money) int    { return m.d.Cmp(o.d) }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

// Float64 is for display-adjacent consumers only (charts, sorting). Not for
// further arithmetic.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// String renders the full internal precision.
func (m Money) String() string { return m.d.String() }

// Display renders at currency precision, e.g. "2.50".
func (m Money) Display() string { return m.d.StringFixed(DisplayScale) }

// MarshalJSON renders the amount as a JSON string to keep API clients away
// from float parsing.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.d.StringFixed(InternalScale) + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("money: unmarshal %s: %w", b, err)
	}
	*m = New(d)
	return nil
}

// Value implements driver.Valuer so Money persists as NUMERIC.
func (m Money) Value() (driver.Value, error) {
	return m.d.StringFixed(InternalScale), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src any) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("money: scan %v: %w", src, err)
	}
	*m = New(d)
	return nil
}

// Sum adds a series of amounts in exact arithmetic.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.d)
	}
	return New(total)
}
