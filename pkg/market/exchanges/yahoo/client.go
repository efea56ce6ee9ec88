package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

const (
	defaultBaseURL          = "https://query1.finance.yahoo.com"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 2
	defaultRetryBackoffBase = 200 * time.Millisecond
	defaultUserAgent        = "Mozilla/5.0 (compatible; findash/1.0)"
)

// errNotFound marks an upstream rejection of the symbol.
var errNotFound = errors.New("yahoo: symbol not found")

// notFoundError carries Yahoo's own description of the rejection.
type notFoundError struct{ description string }

func (e *notFoundError) Error() string { return "yahoo: " + e.description }
func (e *notFoundError) Unwrap() error { return errNotFound }

// Client wraps the Yahoo Finance chart and quote endpoints.
type Client struct {
	baseURL    string
	quoteURL   string
	httpClient *http.Client
	maxRetries int
	userAgent  string
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the chart API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithQuoteURL overrides the quote API host (defaults to the chart host).
func WithQuoteURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.quoteURL = strings.TrimRight(u, "/")
		}
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// WithUserAgent sets the User-Agent header; Yahoo rejects empty agents.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient constructs a Yahoo Finance client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.quoteURL == "" {
		client.quoteURL = client.baseURL
	}
	return client
}

// chart fetches the chart payload for symbol with the given range and interval.
func (c *Client) chart(ctx context.Context, symbol, rng, interval string) (*chartResult, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("includePrePost", "false")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	var payload chartResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if e := payload.Chart.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, &notFoundError{description: e.Description}
		}
		return nil, fmt.Errorf("yahoo: chart error %s: %s", e.Code, e.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, &notFoundError{description: "no chart data returned"}
	}
	return &payload.Chart.Result[0], nil
}

// quote fetches fundamentals for symbol from the quote endpoint.
func (c *Client) quote(ctx context.Context, symbol string) (*quoteResult, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.quoteURL, url.QueryEscape(symbol))
	var payload quoteResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if e := payload.QuoteResponse.Error; e != nil {
		return nil, fmt.Errorf("yahoo: quote error %s: %s", e.Code, e.Description)
	}
	if len(payload.QuoteResponse.Result) == 0 {
		return nil, &notFoundError{description: "no quote returned"}
	}
	return &payload.QuoteResponse.Result[0], nil
}

// LatestPrice returns the regular-market price for symbol, e.g. "EUR=X".
func (c *Client) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	chart, err := c.chart(ctx, symbol, "1d", "1d")
	if err != nil {
		return 0, err
	}
	if chart.Meta.RegularMarketPrice > 0 {
		return chart.Meta.RegularMarketPrice, nil
	}
	if len(chart.Indicators.Quote) > 0 {
		closes := chart.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if v := valueAt(closes, i); v > 0 {
				return v, nil
			}
		}
	}
	return 0, &notFoundError{description: "no price for " + symbol}
}

// get performs a GET with retry on transport errors, 429, and 5xx responses.
// A 404 maps to errNotFound; other non-2xx statuses fail immediately.
func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("yahoo: build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("yahoo: request: %w", err)
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("yahoo: read response: %w", readErr)
			case resp.StatusCode == http.StatusNotFound:
				return c.decodeNotFound(body)
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				lastErr = fmt.Errorf("yahoo: http status %d", resp.StatusCode)
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				return fmt.Errorf("yahoo: http status %d: %s", resp.StatusCode, truncate(body, 200))
			default:
				if err := json.Unmarshal(body, result); err != nil {
					return fmt.Errorf("yahoo: decode response: %w", err)
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			logx.WithContext(ctx).Slowf("yahoo: retrying %s after %v: %v", endpoint, backoff, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return errors.New("yahoo: request failed without error detail")
}

func (c *Client) decodeNotFound(body []byte) error {
	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Chart.Error != nil {
		return &notFoundError{description: payload.Chart.Error.Description}
	}
	return &notFoundError{description: "symbol not found"}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
