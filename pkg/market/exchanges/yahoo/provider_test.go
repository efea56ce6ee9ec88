package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash-api/pkg/market"
)

const chartAAPL = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "AAPL", "currency": "USD", "exchangeName": "NMS",
        "fullExchangeName": "NasdaqGS", "longName": "Apple Inc.",
        "regularMarketPrice": 150.0, "chartPreviousClose": 145.0,
        "regularMarketVolume": 50000000,
        "fiftyTwoWeekHigh": 199.6, "fiftyTwoWeekLow": 124.2
      },
      "timestamp": [1704153600, 1704240000, 1704326400],
      "indicators": {
        "quote": [{
          "open":   [145.1, null, 148.0],
          "high":   [147.0, null, 151.0],
          "low":    [144.0, null, 147.5],
          "close":  [146.0, null, 150.0],
          "volume": [40000000, null, 50000000]
        }]
      }
    }],
    "error": null
  }
}`

const quoteAAPL = `{"quoteResponse":{"result":[{"symbol":"AAPL","marketCap":2500000000000,"trailingPE":28.4}],"error":null}}`

const chartMissing = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewProvider("yahoo-test",
		WithTimeout(2*time.Second),
		WithClientOptions(WithBaseURL(server.URL), WithMaxRetries(1)),
	)
}

func TestProviderFetch(t *testing.T) {
	var gotRange, gotInterval, gotUA string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL"):
			gotRange = r.URL.Query().Get("range")
			gotInterval = r.URL.Query().Get("interval")
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(chartAAPL))
		case r.URL.Path == "/v7/finance/quote":
			_, _ = w.Write([]byte(quoteAAPL))
		default:
			http.NotFound(w, r)
		}
	})

	series, err := provider.Fetch(context.Background(), "aapl", "1mo")
	require.NoError(t, err)
	require.NotNil(t, series)

	assert.Equal(t, "1mo", gotRange)
	assert.Equal(t, "1d", gotInterval)
	assert.NotEmpty(t, gotUA)

	assert.Empty(t, series.Error)
	assert.Equal(t, "AAPL", series.Quote.Symbol)
	assert.Equal(t, "Apple Inc.", series.Quote.Name)
	assert.InDelta(t, 150.0, series.Quote.CurrentPrice, 1e-9)
	assert.InDelta(t, 5.0, series.Quote.Change, 1e-9)
	assert.InDelta(t, 2.5e12, series.Quote.MarketCap, 1)
	assert.InDelta(t, 28.4, series.Quote.PERatio, 1e-9)
	assert.Equal(t, int64(50_000_000), series.Quote.Volume)

	require.Len(t, series.Bars, 2, "null interval skipped")
	assert.Equal(t, "2024-01-02", series.Bars[0].Date)
	assert.InDelta(t, 150.0, series.Bars[1].Close, 1e-9)
	assert.NoError(t, market.Validate(series))
}

func TestProviderFetchUnknownSymbol(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(chartMissing))
	})

	series, err := provider.Fetch(context.Background(), "FAKE123", "1mo")
	require.NoError(t, err)
	require.NotNil(t, series)
	assert.Contains(t, series.Error, "No data found")
	assert.ErrorIs(t, market.Validate(series), market.ErrSymbolNotFound)
}

func TestProviderFetchQuoteFailureIsNonFatal(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v7/finance/quote" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(chartAAPL))
	})

	series, err := provider.Fetch(context.Background(), "AAPL", "1mo")
	require.NoError(t, err)
	assert.Zero(t, series.Quote.MarketCap)
	assert.InDelta(t, 150.0, series.Quote.CurrentPrice, 1e-9)
}

func TestProviderFetchServerErrorRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := provider.Fetch(context.Background(), "AAPL", "1mo")
	require.Error(t, err)
	var pe *market.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "yahoo-test", pe.Provider)
	assert.Equal(t, int32(2), calls.Load(), "one retry")
}

func TestProviderFetchMalformedPayload(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":`))
	})
	_, err := provider.Fetch(context.Background(), "AAPL", "1mo")
	var pe *market.ProviderError
	require.ErrorAs(t, err, &pe)
}

func TestProviderFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	provider := NewProvider("slow", WithTimeout(50*time.Millisecond), WithClientOptions(WithBaseURL(server.URL), WithMaxRetries(0)))

	_, err := provider.Fetch(context.Background(), "AAPL", "1mo")
	var pe *market.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Timeout())
}

func TestLatestPrice(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/EUR=X", r.URL.Path)
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":0.92},"timestamp":[],"indicators":{"quote":[{}]}}]}}`))
	})
	price, err := provider.LatestPrice(context.Background(), "EUR=X")
	require.NoError(t, err)
	assert.InDelta(t, 0.92, price, 1e-9)
}
