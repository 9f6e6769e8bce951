package server

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	archive "github.com/zuumi/trading-archive-analyze"
)

func testService(quotes stubQuotes) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(quotes, time.Second, log)
}

func TestServiceAnalyze_FetchFailureIsLocalized(t *testing.T) {
	service := testService(stubQuotes{"btc_jpy": 120})

	csv := "pair,side,quantity,price\nbtc_jpy,buy,1,100\neth_jpy,buy,1,300\n"
	analysis, err := service.Analyze(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	btc := analysis.Report.Summary("btc_jpy")
	if btc.CurrentPrice == nil || !btc.Valuation.Equal(archive.M(120)) {
		t.Errorf("btc enrichment missing: %+v", btc)
	}
	eth := analysis.Report.Summary("eth_jpy")
	if eth.CurrentPrice != nil || !eth.Valuation.IsZero() {
		t.Errorf("eth should be unavailable: %+v", eth)
	}
}

func TestServiceAnalyze_ParseErrorAbortsUpload(t *testing.T) {
	service := testService(stubQuotes{})

	_, err := service.Analyze(context.Background(), strings.NewReader("not,a,trade,history\n1,2,3,4\n"))
	if err == nil {
		t.Fatal("expected an error for a malformed history")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "")

	cfg := LoadConfig()
	if cfg.Port != defaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if cfg.FetchTimeout != defaultFetchSeconds*time.Second {
		t.Errorf("FetchTimeout = %s, want %ds", cfg.FetchTimeout, defaultFetchSeconds)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "3")
	t.Setenv("BITBANK_BASE_URL", "http://localhost:1234")

	cfg := LoadConfig()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %s, want 3s", cfg.FetchTimeout)
	}
	if cfg.BitbankBaseURL != "http://localhost:1234" {
		t.Errorf("BitbankBaseURL = %q", cfg.BitbankBaseURL)
	}
}
