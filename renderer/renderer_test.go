package renderer

import (
	"strings"
	"testing"

	archive "github.com/zuumi/trading-archive-analyze"
)

func buildReport(t *testing.T) *archive.Report {
	t.Helper()
	report, err := archive.Analyze([]archive.Trade{
		{Pair: "btc_jpy", Side: archive.Buy, Quantity: archive.Q(2), Price: archive.M(100)},
		{Pair: "eth_jpy", Side: archive.Buy, Quantity: archive.Q(1), Price: archive.M(300)},
	})
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	report.Enrich(map[string]archive.Money{"btc_jpy": archive.M(150)})
	return report
}

func TestQuoteCurrency(t *testing.T) {
	testCases := []struct {
		pair string
		want string
	}{
		{"btc_jpy", "JPY"},
		{"eth_usd", "USD"},
		{"btc", "JPY"},
		{"xrp_xyz", "JPY"},
	}
	for _, tc := range testCases {
		if got := QuoteCurrency(tc.pair); got != tc.want {
			t.Errorf("QuoteCurrency(%q) = %q, want %q", tc.pair, got, tc.want)
		}
	}
}

func TestBaseAsset(t *testing.T) {
	if got := BaseAsset("btc_jpy"); got != "BTC" {
		t.Errorf("BaseAsset(btc_jpy) = %q, want BTC", got)
	}
}

func TestReportMarkdown(t *testing.T) {
	got := ReportMarkdown(buildReport(t))

	for _, want := range []string{
		"# Trading Archive Analysis",
		"BTC_JPY",
		"ETH_JPY",
		"2.00000000 BTC",
		"unavailable",
		"Total purchase amount:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}

	// eth has no quote: its valuation must render as zero, not as an error
	if strings.Contains(got, "<nil>") {
		t.Errorf("markdown leaked a nil value:\n%s", got)
	}
}
