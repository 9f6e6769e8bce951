// Package renderer renders trade history analysis reports as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	money "github.com/Rhymond/go-money"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	archive "github.com/zuumi/trading-archive-analyze"
)

// QuoteCurrency infers the quote currency from the pair suffix, e.g.
// "btc_jpy" quotes in JPY. Pairs without a recognizable suffix fall
// back to JPY, the currency of the exchange this tool grew around.
func QuoteCurrency(pair string) string {
	if i := strings.LastIndex(pair, "_"); i >= 0 {
		if cur := money.GetCurrency(strings.ToUpper(pair[i+1:])); cur != nil {
			return cur.Code
		}
	}
	return money.JPY
}

// BaseAsset is the pair prefix in upper case, e.g. "BTC" for btc_jpy.
func BaseAsset(pair string) string {
	if i := strings.Index(pair, "_"); i > 0 {
		return strings.ToUpper(pair[:i])
	}
	return strings.ToUpper(pair)
}

// display formats a monetary value in the given currency, e.g.
// "¥9,123,456" for JPY.
func display(m archive.Money, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return m.String()
	}
	minor := m.Decimal().Mul(decimal.New(1, int32(cur.Fraction)))
	return money.New(minor.Round(0).IntPart(), currency).Display()
}

// signedDisplay is display with an explicit sign, used for profit cells.
func signedDisplay(m archive.Money, currency string) string {
	if m.IsPositive() {
		return "+" + display(m, currency)
	}
	return display(m, currency)
}

// ReportMarkdown renders the enriched report to a markdown document:
// overall totals followed by the per-pair summary table.
func ReportMarkdown(r *archive.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trading Archive Analysis")

	// The totals assume a single quote currency across the report,
	// which holds for the single-exchange histories this tool reads.
	currency := money.JPY
	if pairs := r.Pairs(); len(pairs) > 0 {
		currency = QuoteCurrency(pairs[0])
	}

	doc.H2("Totals")
	doc.BulletList(
		fmt.Sprintf("Total valuation: %s", display(r.TotalValuation(), currency)),
		fmt.Sprintf("Total purchase amount: %s", display(r.TotalPurchaseAmount(), currency)),
		fmt.Sprintf("Profit: %s", signedDisplay(r.TotalProfit(), currency)),
	)

	doc.H2("Pairs")
	table := md.TableSet{
		Header: []string{
			"Pair", "Avg Purchase Price", "Holdings", "Purchase Amount",
			"Buys", "Sells", "Price Range", "Current Price", "Valuation", "Profit",
		},
	}
	for _, s := range r.Summaries() {
		cur := QuoteCurrency(s.Pair)
		currentPrice := "unavailable"
		if s.CurrentPrice != nil {
			currentPrice = display(*s.CurrentPrice, cur)
		}
		table.Rows = append(table.Rows, []string{
			strings.ToUpper(s.Pair),
			display(s.AveragePurchasePrice, cur),
			fmt.Sprintf("%s %s", s.CurrentHoldings.StringFixed(), BaseAsset(s.Pair)),
			display(s.TotalPurchaseAmount, cur),
			fmt.Sprintf("%d", s.PurchaseCount),
			fmt.Sprintf("%d", s.SellCount),
			fmt.Sprintf("%s - %s", display(s.MinPrice, cur), display(s.MaxPrice, cur)),
			currentPrice,
			display(s.Valuation, cur),
			signedDisplay(s.Profit, cur),
		})
	}
	doc.Table(table)

	return doc.String()
}
