package archive

import "github.com/shopspring/decimal"

// quantityScale is the number of decimal places kept on reported
// quantities, the minimal unit of the base asset.
const quantityScale = 8

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an amount of base asset (e.g. BTC in btc_jpy).
type Quantity struct {
	value decimal.Decimal
}

// Q builds a Quantity from any supported numeric type.
func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses the decimal representation of a quantity.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: d}, nil
}

func (q Quantity) Add(p Quantity) Quantity     { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity     { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }

// Round rounds the quantity to the base asset minimal unit.
func (q Quantity) Round() Quantity { return Quantity{value: q.value.Round(quantityScale)} }

// Decimal exposes the underlying exact value.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

func (q Quantity) String() string { return q.value.String() }

// StringFixed renders the quantity with all eight decimal places,
// e.g. "0.50000000".
func (q Quantity) StringFixed() string { return q.value.StringFixed(quantityScale) }

// MarshalJSON renders the quantity as a plain JSON number rounded to
// the quantity scale.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.value.Round(quantityScale).String()), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	return q.value.UnmarshalJSON(data)
}
