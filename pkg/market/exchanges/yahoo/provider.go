package yahoo

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/pkg/market"
)

const (
	providerType           = "yahoo"
	defaultProviderTimeout = 12 * time.Second
)

// Provider adapts the Yahoo client to market.Provider.
type Provider struct {
	name    string
	client  *Client
	timeout time.Duration
}

type providerConfig struct {
	timeout      time.Duration
	clientConfig []Option
}

// ProviderOption customises the Yahoo provider.
type ProviderOption func(*providerConfig)

// WithTimeout bounds each Fetch call, including the quote lookup.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientConfig = append(cfg.clientConfig, options...)
	}
}

// NewProvider constructs a Yahoo market provider.
func NewProvider(name string, opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	if name == "" {
		name = providerType
	}
	return &Provider{
		name:    name,
		client:  NewClient(cfg.clientConfig...),
		timeout: cfg.timeout,
	}
}

func init() {
	market.RegisterProvider(providerType, func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{
			WithBaseURL(cfg.BaseURL),
			WithQuoteURL(cfg.QuoteURL),
			WithUserAgent(cfg.UserAgent),
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		opts = append(opts, WithClientOptions(clientOptions...))
		return NewProvider(name, opts...), nil
	})
}

// Name implements market.Provider.
func (p *Provider) Name() string { return p.name }

// Client exposes the underlying client, e.g. as a currency price source.
func (p *Provider) Client() *Client { return p.client }

// LatestPrice implements market.PriceSource.
func (p *Provider) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	price, err := p.client.LatestPrice(ctx, symbol)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return 0, market.ErrSymbolNotFound
		}
		return 0, market.NewProviderError(p.name, symbol, err)
	}
	return price, nil
}

// Fetch implements market.Provider.
func (p *Provider) Fetch(ctx context.Context, symbol string, period market.Period) (*market.Series, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	symbol = market.NormalizeSymbol(symbol)
	spec := period.Spec()

	chart, err := p.client.chart(ctx, symbol, spec.Range, spec.Interval)
	if err != nil {
		var nf *notFoundError
		if errors.As(err, &nf) {
			return &market.Series{Error: nf.description}, nil
		}
		return nil, market.NewProviderError(p.name, symbol, err)
	}

	series := convertChart(symbol, spec, chart)

	fundamentals, err := p.client.quote(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return nil, market.NewProviderError(p.name, symbol, ctx.Err())
		}
		logx.WithContext(ctx).Slowf("yahoo: quote fundamentals unavailable for %s: %v", symbol, err)
	} else {
		mergeQuote(&series.Quote, fundamentals)
	}
	return series, nil
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func convertChart(symbol string, spec market.PeriodSpec, chart *chartResult) *market.Series {
	meta := chart.Meta
	name := strings.TrimSpace(meta.LongName)
	if name == "" {
		name = strings.TrimSpace(meta.ShortName)
	}
	prevClose := meta.ChartPreviousClose
	if meta.PreviousClose > 0 {
		prevClose = meta.PreviousClose
	}
	exchange := meta.FullExchangeName
	if exchange == "" {
		exchange = meta.ExchangeName
	}

	quote := market.Quote{
		Symbol:        symbol,
		Name:          name,
		Currency:      meta.Currency,
		Exchange:      exchange,
		CurrentPrice:  meta.RegularMarketPrice,
		PreviousClose: prevClose,
		Volume:        meta.RegularMarketVolume,
		High52Week:    meta.FiftyTwoWeekHigh,
		Low52Week:     meta.FiftyTwoWeekLow,
	}

	series := &market.Series{}
	if len(chart.Indicators.Quote) > 0 {
		arrays := chart.Indicators.Quote[0]
		layout := spec.DateLayout()
		series.Bars = make([]market.Bar, 0, len(chart.Timestamp))
		for i, ts := range chart.Timestamp {
			o, h, l, c := valueAt(arrays.Open, i), valueAt(arrays.High, i), valueAt(arrays.Low, i), valueAt(arrays.Close, i)
			if o == 0 && h == 0 && l == 0 && c == 0 {
				continue // null interval
			}
			at := time.Unix(ts, 0).UTC()
			series.Bars = append(series.Bars, market.Bar{
				Symbol:    symbol,
				Date:      at.Format(layout),
				Timestamp: at,
				Open:      o,
				High:      h,
				Low:       l,
				Close:     c,
				Volume:    int64(valueAt(arrays.Volume, i)),
			})
		}
	}

	if quote.CurrentPrice == 0 && len(series.Bars) > 0 {
		quote.CurrentPrice = series.Bars[len(series.Bars)-1].Close
	}
	if quote.Volume == 0 && len(series.Bars) > 0 {
		quote.Volume = series.Bars[len(series.Bars)-1].Volume
	}
	quote.ComputeChange()
	series.Quote = quote
	return series
}

func mergeQuote(q *market.Quote, r *quoteResult) {
	if r == nil {
		return
	}
	q.MarketCap = r.MarketCap
	q.PERatio = r.TrailingPE
	if q.Name == "" {
		q.Name = firstNonEmpty(r.LongName, r.ShortName)
	}
	if q.Volume == 0 {
		q.Volume = r.RegularMarketVolume
	}
	if q.High52Week == 0 {
		q.High52Week = r.FiftyTwoWeekHigh
	}
	if q.Low52Week == 0 {
		q.Low52Week = r.FiftyTwoWeekLow
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
