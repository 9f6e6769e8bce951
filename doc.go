// Package archive computes FIFO cost-basis statistics over a crypto
// trade history.
//
// The entry point is [Analyze], which folds a chronologically ordered
// sequence of [Trade] records into one [Summary] per currency pair: the
// queue of still-unsold purchase lots, the weighted average purchase
// price of what remains, current holdings, and raw counting statistics.
// A [Report] can then be enriched with live quotes obtained through a
// [QuoteService] to derive valuation and profit per pair.
//
// The package performs no I/O of its own beyond reading trade histories
// from an io.Reader; fetching live prices is delegated to QuoteService
// implementations such as the bitbank subpackage.
package archive
