package archive

import "fmt"

// Summary is the per-pair outcome of a FIFO pass over the trade
// history. Purchase figures describe the surviving lot queue only;
// counts and the price range cover every row of the pair regardless of
// side. CurrentPrice, Valuation and Profit are zero until the summary
// is enriched with a live quote, see [Report.Enrich].
type Summary struct {
	Pair string

	AveragePurchasePrice  Money    // weighted average over surviving lots
	TotalPurchaseQuantity Quantity // sum of surviving lot quantities
	TotalPurchaseAmount   Money    // sum of surviving lot amounts
	CurrentHoldings       Quantity // equals TotalPurchaseQuantity

	PurchaseCount     int
	SellCount         int
	TotalTransactions int
	MinPrice          Money
	MaxPrice          Money

	CurrentPrice *Money // nil while unavailable
	Valuation    Money  // CurrentPrice * CurrentHoldings, zero while unavailable
	Profit       Money  // Valuation - TotalPurchaseAmount
}

// MarshalJSON renders the summary with the stable field order of the
// trade history reports.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("average_purchase_price", s.AveragePurchasePrice)
	w.Append("total_purchase_quantity", s.TotalPurchaseQuantity)
	w.Append("total_purchase_amount", s.TotalPurchaseAmount)
	w.Append("purchase_count", s.PurchaseCount)
	w.Append("sell_count", s.SellCount)
	w.Append("total_transactions", s.TotalTransactions)
	w.Append("min_price", s.MinPrice)
	w.Append("max_price", s.MaxPrice)
	w.Append("current_holdings", s.CurrentHoldings)
	if s.CurrentPrice != nil {
		w.Append("current_price", *s.CurrentPrice)
	} else {
		w.Append("current_price", nil)
	}
	w.Append("valuation", s.Valuation)
	w.Append("profit", s.Profit)
	return w.MarshalJSON()
}

// Report holds one summary per pair, in the order pairs first appear
// in the trade history.
type Report struct {
	summaries []*Summary
	index     map[string]*Summary
}

// Summaries returns the summaries in first-seen pair order.
func (r *Report) Summaries() []*Summary { return r.summaries }

// Summary returns the summary for a pair (case-insensitive), or nil if
// the pair never appears in the history.
func (r *Report) Summary(pair string) *Summary {
	return r.index[Trade{Pair: pair}.key()]
}

// Pairs returns the pair keys in first-seen order.
func (r *Report) Pairs() []string {
	pairs := make([]string, 0, len(r.summaries))
	for _, s := range r.summaries {
		pairs = append(pairs, s.Pair)
	}
	return pairs
}

// TotalPurchaseAmount sums the purchase amount across all pairs.
func (r *Report) TotalPurchaseAmount() Money {
	var total Money
	for _, s := range r.summaries {
		total = total.Add(s.TotalPurchaseAmount)
	}
	return total
}

// TotalValuation sums the live valuation across all pairs. Pairs
// without a quote contribute zero.
func (r *Report) TotalValuation() Money {
	var total Money
	for _, s := range r.summaries {
		total = total.Add(s.Valuation)
	}
	return total
}

// TotalProfit is the live valuation minus the purchase amount over the
// whole report.
func (r *Report) TotalProfit() Money {
	return r.TotalValuation().Sub(r.TotalPurchaseAmount())
}

// MarshalJSON renders the report as a JSON object keyed by pair,
// preserving first-seen pair order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, s := range r.summaries {
		w.Append(s.Pair, s)
	}
	return w.MarshalJSON()
}

// pairState accumulates the FIFO fold for a single pair.
type pairState struct {
	queue    lots
	buys     int
	sells    int
	rows     int
	minPrice Money
	maxPrice Money
}

// Analyze folds a trade history into one summary per pair.
//
// Trades must be ordered chronologically; each pair's sub-sequence is
// consumed in the relative order it appears. Buys append a lot to the
// back of the pair's queue, sells consume lots from the front. Selling
// more than the queue holds drains it without error: holdings cannot go
// negative and the excess is dropped.
//
// Any trade that fails [Trade.Validate] aborts the whole analysis with
// an error wrapping [ErrInvalidTrade]; no partial report is produced.
func Analyze(trades []Trade) (*Report, error) {
	states := make(map[string]*pairState)
	var order []string

	for i, trade := range trades {
		if err := trade.Validate(); err != nil {
			return nil, fmt.Errorf("trade %d: %w", i+1, err)
		}
		key := trade.key()
		st, ok := states[key]
		if !ok {
			st = &pairState{minPrice: trade.Price, maxPrice: trade.Price}
			states[key] = st
			order = append(order, key)
		}
		st.rows++
		if trade.Price.LessThan(st.minPrice) {
			st.minPrice = trade.Price
		}
		if trade.Price.GreaterThan(st.maxPrice) {
			st.maxPrice = trade.Price
		}
		switch trade.Side {
		case Buy:
			st.buys++
			// a zero-quantity buy is counted but never becomes a lot
			if trade.Quantity.IsPositive() {
				st.queue = append(st.queue, lot{Quantity: trade.Quantity, Price: trade.Price})
			}
		case Sell:
			st.sells++
			st.queue = st.queue.consume(trade.Quantity)
		}
	}

	report := &Report{index: make(map[string]*Summary, len(order))}
	for _, key := range order {
		st := states[key]
		quantity := st.queue.totalQuantity()
		amount := st.queue.totalAmount()
		average := M(0)
		if quantity.IsPositive() {
			average = amount.Div(quantity)
		}
		s := &Summary{
			Pair:                  key,
			AveragePurchasePrice:  average.Round(),
			TotalPurchaseQuantity: quantity.Round(),
			TotalPurchaseAmount:   amount.Round(),
			CurrentHoldings:       quantity.Round(),
			PurchaseCount:         st.buys,
			SellCount:             st.sells,
			TotalTransactions:     st.rows,
			MinPrice:              st.minPrice.Round(),
			MaxPrice:              st.maxPrice.Round(),
		}
		report.summaries = append(report.summaries, s)
		report.index[s.Pair] = s
	}
	return report, nil
}
