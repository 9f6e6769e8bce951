package archive

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to read the trade history upload format.
// It is a delimited table with a header row; row order is significant
// and must reflect execution time.

// Header aliases accepted for each required column. Exchange exports
// this tool grew around use the Japanese bitbank headers, so those are
// recognized alongside the English names.
var columnAliases = map[string][]string{
	"pair":     {"pair", "currency_pair", "instrument", "通貨ペア"},
	"side":     {"side", "売/買"},
	"quantity": {"quantity", "qty", "数量"},
	"price":    {"price", "価格"},
}

// mapColumns resolves the index of each required column in the header
// row, case-insensitively.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(columnAliases))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		for column, aliases := range columnAliases {
			for _, alias := range aliases {
				if name == alias {
					index[column] = i
				}
			}
		}
	}
	for column := range columnAliases {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("missing required column %q in header %v", column, header)
		}
	}
	return index, nil
}

// ImportTrades reads a trade history from 'r'.
//
// The expected format is CSV with a header row naming at least the
// pair, side, quantity and price columns. Any unreadable row aborts the
// whole import with a single error; no partial history is returned. An
// empty history (header only) is valid and yields no trades.
func ImportTrades(r io.Reader) ([]Trade, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read trade history header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var trades []Trade
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		side, err := ParseSide(record[columns["side"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		quantity, err := ParseQuantity(strings.TrimSpace(record[columns["quantity"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: cannot parse quantity %q: %w", line, record[columns["quantity"]], err)
		}
		price, err := ParseMoney(strings.TrimSpace(record[columns["price"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: cannot parse price %q: %w", line, record[columns["price"]], err)
		}

		trades = append(trades, Trade{
			Pair:     strings.TrimSpace(record[columns["pair"]]),
			Side:     side,
			Quantity: quantity,
			Price:    price,
		})
	}
	return trades, nil
}
