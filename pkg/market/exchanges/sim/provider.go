// Package sim provides a deterministic offline market provider for local
// development and tests. Series are a seeded random walk per symbol.
package sim

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"findash-api/pkg/market"
)

const (
	providerType         = "sim"
	defaultUnknownPrefix = "FAKE"
)

// Provider generates synthetic series.
type Provider struct {
	name          string
	unknownPrefix string
	now           func() time.Time
	latency       time.Duration
}

// Option customises the sim provider.
type Option func(*Provider)

// WithUnknownPrefix sets the symbol prefix reported as not found.
func WithUnknownPrefix(prefix string) Option {
	return func(p *Provider) {
		if prefix != "" {
			p.unknownPrefix = strings.ToUpper(prefix)
		}
	}
}

// WithClock pins the series end time.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLatency delays every Fetch, honouring context cancellation.
func WithLatency(d time.Duration) Option {
	return func(p *Provider) { p.latency = d }
}

// NewProvider constructs a sim provider.
func NewProvider(name string, opts ...Option) *Provider {
	if name == "" {
		name = providerType
	}
	p := &Provider{
		name:          name,
		unknownPrefix: defaultUnknownPrefix,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func init() {
	market.RegisterProvider(providerType, func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		return NewProvider(name, WithUnknownPrefix(cfg.Mode)), nil
	})
}

// Name implements market.Provider.
func (p *Provider) Name() string { return p.name }

// Fetch implements market.Provider.
func (p *Provider) Fetch(ctx context.Context, symbol string, period market.Period) (*market.Series, error) {
	if p.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, market.NewProviderError(p.name, symbol, ctx.Err())
		case <-time.After(p.latency):
		}
	}
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" || strings.HasPrefix(symbol, p.unknownPrefix) {
		return &market.Series{Error: "symbol not found"}, nil
	}

	spec := period.Spec()
	step, count := stepFor(spec)
	rng := rand.New(rand.NewSource(seed(symbol)))

	price := 20 + rng.Float64()*480
	end := p.now().UTC().Truncate(step)
	bars := make([]market.Bar, count)
	for i := 0; i < count; i++ {
		open := price
		drift := (rng.Float64() - 0.5) * 0.04 * price
		closePx := math.Max(0.01, open+drift)
		high := math.Max(open, closePx) * (1 + rng.Float64()*0.01)
		low := math.Min(open, closePx) * (1 - rng.Float64()*0.01)
		ts := end.Add(-time.Duration(count-1-i) * step)
		bars[i] = market.Bar{
			Symbol:    symbol,
			Date:      ts.Format(spec.DateLayout()),
			Timestamp: ts,
			Open:      round2(open),
			High:      round2(high),
			Low:       round2(low),
			Close:     round2(closePx),
			Volume:    int64(1_000_000 + rng.Intn(9_000_000)),
		}
		price = closePx
	}

	last := bars[count-1]
	quote := market.Quote{
		Symbol:        symbol,
		Name:          symbol + " (simulated)",
		Currency:      "USD",
		Exchange:      "SIM",
		CurrentPrice:  last.Close,
		PreviousClose: bars[count-2].Close,
		MarketCap:     last.Close * float64(50_000_000+rng.Intn(500_000_000)),
		Volume:        last.Volume,
		PERatio:       round2(8 + rng.Float64()*40),
	}
	quote.High52Week, quote.Low52Week = last.High, last.Low
	for _, b := range bars {
		quote.High52Week = math.Max(quote.High52Week, b.High)
		quote.Low52Week = math.Min(quote.Low52Week, b.Low)
	}
	quote.ComputeChange()
	return &market.Series{Quote: quote, Bars: bars}, nil
}

// LatestPrice implements market.PriceSource.
func (p *Provider) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	series, err := p.Fetch(ctx, symbol, "1d")
	if err != nil {
		return 0, err
	}
	if err := market.Validate(series); err != nil {
		return 0, err
	}
	return series.Quote.CurrentPrice, nil
}

func stepFor(spec market.PeriodSpec) (time.Duration, int) {
	switch spec.Interval {
	case "1m":
		return time.Minute, 390
	case "5m":
		return 5 * time.Minute, 78
	case "15m":
		return 15 * time.Minute, 130
	case "30m":
		return 30 * time.Minute, 65
	case "1wk":
		return 7 * 24 * time.Hour, 104
	case "1mo":
		return 30 * 24 * time.Hour, 120
	}
	days := map[string]int{"1mo": 22, "3mo": 63, "6mo": 126, "ytd": 200, "1y": 252}
	if n, ok := days[spec.Range]; ok {
		return 24 * time.Hour, n
	}
	return 24 * time.Hour, 22
}

func seed(symbol string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum64())
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
