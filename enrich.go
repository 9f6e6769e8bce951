package archive

import (
	"context"
	"sync"
)

// QuoteService provides the last traded price of a currency pair. The
// engine stays independently testable by depending only on this
// capability; the bitbank subpackage provides the production
// implementation.
type QuoteService interface {
	LastPrice(ctx context.Context, pair string) (Money, error)
}

// FetchQuotes looks up the last price of every pair. Lookups are
// independent and run concurrently; a pair whose lookup fails is simply
// absent from the result and treated as price unavailable by the
// caller. Failures never abort other pairs.
func FetchQuotes(ctx context.Context, service QuoteService, pairs []string) map[string]Money {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		quotes = make(map[string]Money, len(pairs))
	)
	for _, pair := range pairs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			price, err := service.LastPrice(ctx, pair)
			if err != nil {
				return
			}
			mu.Lock()
			quotes[pair] = price
			mu.Unlock()
		}()
	}
	wg.Wait()
	return quotes
}

// Enrich merges live quotes into the report. For each pair with a
// quote, valuation is the current price times current holdings and
// profit is the valuation minus the total purchase amount. A pair
// without a quote keeps a nil current price and a zero valuation, so
// its profit reflects the full sunk purchase amount.
func (r *Report) Enrich(quotes map[string]Money) {
	for _, s := range r.summaries {
		if price, ok := quotes[s.Pair]; ok {
			rounded := price.Round()
			s.CurrentPrice = &rounded
			s.Valuation = price.Mul(s.CurrentHoldings).Round()
		} else {
			s.CurrentPrice = nil
			s.Valuation = M(0)
		}
		s.Profit = s.Valuation.Sub(s.TotalPurchaseAmount).Round()
	}
}
