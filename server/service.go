package server

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	archive "github.com/zuumi/trading-archive-analyze"
)

// Analysis bundles the enriched report with the parsed trades it was
// built from; the raw trades feed the scatter chart.
type Analysis struct {
	Report *archive.Report
	Trades []archive.Trade
}

// Service runs the full upload pipeline: parse, FIFO analysis, live
// quote enrichment. Each upload is an isolated computation; nothing is
// shared or persisted between invocations.
type Service struct {
	quotes       archive.QuoteService
	fetchTimeout time.Duration
	log          *logrus.Logger
}

// NewService wires the pipeline around a quote service.
func NewService(quotes archive.QuoteService, fetchTimeout time.Duration, log *logrus.Logger) *Service {
	return &Service{quotes: quotes, fetchTimeout: fetchTimeout, log: log}
}

// Analyze processes one uploaded trade history. A parse or validation
// failure aborts the whole upload with a single error; a quote fetch
// failure only leaves the affected pair without a valuation.
func (s *Service) Analyze(ctx context.Context, r io.Reader) (*Analysis, error) {
	trades, err := archive.ImportTrades(r)
	if err != nil {
		return nil, err
	}
	report, err := archive.Analyze(trades)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	quotes := archive.FetchQuotes(fetchCtx, s.quotes, report.Pairs())
	for _, pair := range report.Pairs() {
		if _, ok := quotes[pair]; !ok {
			s.log.WithField("pair", pair).Warn("price unavailable")
		}
	}
	report.Enrich(quotes)

	return &Analysis{Report: report, Trades: trades}, nil
}
