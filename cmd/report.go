package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	archive "github.com/zuumi/trading-archive-analyze"
	"github.com/zuumi/trading-archive-analyze/bitbank"
	"github.com/zuumi/trading-archive-analyze/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	historyFile string
	offline     bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "analyze a trade history CSV and print the summary" }
func (*reportCmd) Usage() string {
	return `taa report -f <history.csv> [-offline]

  Computes FIFO average purchase prices and holdings from the trade
  history and prints the summary table, valued at live bitbank prices
  unless -offline is given.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.historyFile, "f", "", "Trade history CSV file to analyze.")
	f.BoolVar(&c.offline, "offline", false, "Skip fetching live prices; valuations are reported as unavailable.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.historyFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -f <history.csv> is required")
		return subcommands.ExitUsageError
	}

	file, err := os.Open(c.historyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trade history %q: %v\n", c.historyFile, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	trades, err := archive.ImportTrades(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trade history %q: %v\n", c.historyFile, err)
		return subcommands.ExitFailure
	}
	report, err := archive.Analyze(trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing trade history: %v\n", err)
		return subcommands.ExitFailure
	}

	quotes := map[string]archive.Money{}
	if !c.offline {
		fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		quotes = archive.FetchQuotes(fetchCtx, bitbank.New(""), report.Pairs())
	}
	report.Enrich(quotes)

	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
