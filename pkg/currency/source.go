package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"findash-api/pkg/market"
)

// RateSource fetches a live rate table for base.
type RateSource interface {
	Rates(ctx context.Context, base string) (Table, error)
}

// StaticSource serves the hardcoded fallback table.
type StaticSource struct{}

// Rates implements RateSource.
func (StaticSource) Rates(_ context.Context, base string) (Table, error) {
	t := FallbackTable(base)
	t.FetchedAt = time.Now().UTC()
	return t, nil
}

// MarketSource derives rates from USD-quoted FX pairs ("EUR=X" is units of
// EUR per US dollar) looked up through a market price source.
type MarketSource struct {
	prices market.PriceSource
	codes  []string
}

// NewMarketSource builds a MarketSource covering the supported currencies.
func NewMarketSource(prices market.PriceSource) *MarketSource {
	codes := make([]string, 0, len(supported))
	for _, c := range supported {
		codes = append(codes, c.Code)
	}
	return &MarketSource{prices: prices, codes: codes}
}

// Rates implements RateSource. Any failed pair fails the whole table so the
// caller can fall back consistently.
func (s *MarketSource) Rates(ctx context.Context, base string) (Table, error) {
	if s.prices == nil {
		return Table{}, errors.New("currency: market source has no price source")
	}
	usd := Table{Base: BaseUSD, Rates: map[string]float64{BaseUSD: 1}, FetchedAt: time.Now().UTC()}
	for _, code := range s.codes {
		if code == BaseUSD {
			continue
		}
		price, err := s.prices.LatestPrice(ctx, code+"=X")
		if err != nil {
			return Table{}, fmt.Errorf("currency: fetch %s rate: %w", code, err)
		}
		if price <= 0 {
			return Table{}, fmt.Errorf("currency: non-positive %s rate %v", code, price)
		}
		usd.Rates[code] = price
	}
	rebased, ok := usd.Rebase(base)
	if !ok {
		return Table{}, fmt.Errorf("currency: unsupported base %q", base)
	}
	return rebased, nil
}
