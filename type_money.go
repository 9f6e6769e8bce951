package archive

import "github.com/shopspring/decimal"

// moneyScale is the number of decimal places kept on reported monetary
// values, quote-currency cents.
const moneyScale = 2

// Money is a value in the quote currency of a pair (price, trade
// amount, valuation). The currency itself is implied by the pair and
// only matters for display, so Money carries the bare decimal value.
type Money struct {
	value decimal.Decimal
}

// M builds a Money from any supported numeric type.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses the decimal representation of a monetary value.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }

// Mul returns the amount of money worth quantity units at this price.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }

// Div returns the per-unit price of this amount spread over quantity.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// Round rounds the value to quote-currency cents.
func (m Money) Round() Money { return Money{value: m.value.Round(moneyScale)} }

// Decimal exposes the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) String() string { return m.value.String() }

// MarshalJSON renders the value as a plain JSON number rounded to
// quote-currency cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.Round(moneyScale).String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
