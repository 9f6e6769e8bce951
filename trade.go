package archive

import (
	"errors"
	"fmt"
	"strings"
)

// Side identifies the direction of an executed order.
type Side string

const (
	// Buy adds a new lot to the pair's queue.
	Buy Side = "buy"
	// Sell consumes lots from the front of the pair's queue.
	Sell Side = "sell"
)

// ErrInvalidTrade reports a trade row the engine refuses to account
// for: non-positive price, negative quantity, unknown side or a
// missing pair.
var ErrInvalidTrade = errors.New("invalid trade")

// ParseSide parses a side value case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("%w: unknown side %q", ErrInvalidTrade, s)
	}
}

// Trade is one executed order of a trade history.
//
// Trades must be presented to the engine in chronological order: FIFO
// consumption relies on the order trades appear in, not on any
// timestamp. Sorting by execution time is the caller's responsibility
// and is not validated here.
type Trade struct {
	Pair     string   // currency pair, e.g. "btc_jpy", grouped case-insensitively
	Side     Side
	Quantity Quantity // base asset amount, never negative
	Price    Money    // quote-currency price per unit, always positive
}

// Amount is the quote-currency value of the trade, quantity times price.
func (t Trade) Amount() Money { return t.Price.Mul(t.Quantity) }

// Validate checks that the trade can be accounted for.
func (t Trade) Validate() error {
	if strings.TrimSpace(t.Pair) == "" {
		return fmt.Errorf("%w: missing pair", ErrInvalidTrade)
	}
	if _, err := ParseSide(string(t.Side)); err != nil {
		return err
	}
	if t.Quantity.IsNegative() {
		return fmt.Errorf("%w: negative quantity %s", ErrInvalidTrade, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: non-positive price %s", ErrInvalidTrade, t.Price)
	}
	return nil
}

// key is the case-insensitive grouping key for the trade's pair.
func (t Trade) key() string { return strings.ToLower(strings.TrimSpace(t.Pair)) }
