// Package bitbank fetches last trade prices from the bitbank public
// ticker API (https://public.bitbank.cc/{pair}/ticker).
package bitbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	archive "github.com/zuumi/trading-archive-analyze"
)

// DefaultBaseURL is the bitbank public data endpoint.
const DefaultBaseURL = "https://public.bitbank.cc"

// Client queries the bitbank public API for ticker data. It implements
// archive.QuoteService.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

var _ archive.QuoteService = (*Client)(nil)

// New returns a client for the given base URL, or DefaultBaseURL when
// empty. Outbound requests are rate limited to stay well within the
// public endpoint's tolerance.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response
// into the provided data structure.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

/*
	{
	    "success": 1,
	    "data": {
	        "sell": "9123460",
	        "buy": "9123450",
	        "high": "9200000",
	        "low": "9000000",
	        "last": "9123456",
	        "vol": "123.4567",
	        "timestamp": 1717223999999
	    }
	}
*/

// LastPrice returns the last traded price of the pair. Any failure
// (network, HTTP status, API error flag, response shape) is returned
// as an error; callers treat it as price unavailable, never as fatal.
func (c *Client) LastPrice(ctx context.Context, pair string) (archive.Money, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return archive.Money{}, err
	}

	addr := fmt.Sprintf("%s/%s/ticker", c.baseURL, url.PathEscape(strings.ToLower(strings.TrimSpace(pair))))
	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return archive.Money{}, fmt.Errorf("error retrieving ticker %q: %w", pair, err)
	}

	if success, err := jsonpath.Get("$.success", jobj); err != nil || success != float64(1) {
		return archive.Money{}, fmt.Errorf("ticker %q: api reported failure", pair)
	}

	jval, err := jsonpath.Get("$.data.last", jobj)
	if err != nil {
		return archive.Money{}, fmt.Errorf("error parsing ticker %q: %w", pair, err)
	}

	// bitbank serves prices as JSON strings, but be lenient about
	// numbers in case that ever changes.
	switch v := jval.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return archive.Money{}, fmt.Errorf("ticker %q: invalid last price %q: %w", pair, v, err)
		}
		return archive.M(d), nil
	case float64:
		return archive.M(v), nil
	default:
		return archive.Money{}, fmt.Errorf("ticker %q: last price is not a number: %v", pair, jval)
	}
}
