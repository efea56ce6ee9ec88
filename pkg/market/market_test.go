package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash-api/pkg/market"
)

func TestParsePeriod(t *testing.T) {
	p, err := market.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, market.DefaultPeriod, p)

	p, err = market.ParsePeriod(" 1WK ")
	require.NoError(t, err)
	assert.Equal(t, market.Period("1wk"), p)

	_, err = market.ParsePeriod("3weeks")
	require.ErrorIs(t, err, market.ErrUnknownPeriod)
}

func TestPeriodSpecs(t *testing.T) {
	tests := []struct {
		period   market.Period
		rng      string
		interval string
		intraday bool
	}{
		{"1h", "1d", "1m", true},
		{"1d", "1d", "5m", true},
		{"1wk", "5d", "30m", true},
		{"1mo", "1mo", "1d", false},
		{"1y", "1y", "1d", false},
		{"5y", "5y", "1wk", false},
		{"max", "max", "1mo", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			spec := tt.period.Spec()
			assert.Equal(t, tt.rng, spec.Range)
			assert.Equal(t, tt.interval, spec.Interval)
			assert.Equal(t, tt.intraday, spec.Intraday())
		})
	}
	for _, p := range market.Periods() {
		_, err := market.ParsePeriod(string(p))
		assert.NoError(t, err, p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  *market.Series
		wantErr bool
	}{
		{"nil", nil, true},
		{"explicit error", &market.Series{Error: "symbol not found", Quote: market.Quote{CurrentPrice: 1}}, true},
		{"all zero", &market.Series{}, true},
		{"price only", &market.Series{Quote: market.Quote{CurrentPrice: 150}}, false},
		{"market cap only", &market.Series{Quote: market.Quote{MarketCap: 1e9}}, false},
		{"volume only", &market.Series{Quote: market.Quote{Volume: 10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := market.Validate(tt.series)
			if tt.wantErr {
				assert.ErrorIs(t, err, market.ErrSymbolNotFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := &market.Series{
		Bars: []market.Bar{
			{Timestamp: base, Open: 1, High: 2, Low: 1, Close: 2, Volume: -5},
			{Timestamp: base.AddDate(0, 0, 2), Open: 3, High: 4, Low: 3, Close: 4},
			{Timestamp: base.AddDate(0, 0, 1)},
		},
	}
	market.Normalize(" aapl ", market.DefaultPeriod, series)

	assert.Equal(t, "AAPL", series.Quote.Symbol)
	assert.Equal(t, "AAPL", series.Quote.Name)
	require.Len(t, series.Bars, 2)
	assert.Equal(t, "2024-03-03", series.Bars[0].Date)
	assert.Equal(t, "2024-03-01", series.Bars[1].Date)
	assert.Equal(t, "AAPL", series.Bars[1].Symbol)
	assert.Zero(t, series.Bars[1].Volume)
}

func TestNormalizeTrimsHourWindow(t *testing.T) {
	end := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	var bars []market.Bar
	for i := 0; i < 180; i++ {
		bars = append(bars, market.Bar{Timestamp: end.Add(-time.Duration(i) * time.Minute), Open: 1, High: 1, Low: 1, Close: 1})
	}
	series := &market.Series{Bars: bars}
	market.Normalize("msft", "1h", series)
	require.Len(t, series.Bars, 61)
	assert.Equal(t, "2024-03-01 15:00", series.Bars[0].Date)
}

func TestFormatMarketCap(t *testing.T) {
	assert.Equal(t, "2.50T", market.FormatMarketCap(2_500_000_000_000))
	assert.Equal(t, "1.20B", market.FormatMarketCap(1_200_000_000))
	assert.Equal(t, "3.00M", market.FormatMarketCap(3_000_000))
	assert.Equal(t, "950,000", market.FormatMarketCap(950_000))
	assert.Equal(t, "N/A", market.FormatMarketCap(0))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "50.0M", market.FormatVolume(50_000_000))
	assert.Equal(t, "12.3K", market.FormatVolume(12_345))
	assert.Equal(t, "999", market.FormatVolume(999))
	assert.Equal(t, "N/A", market.FormatVolume(0))
}

func TestQuoteComputeChange(t *testing.T) {
	q := market.Quote{CurrentPrice: 110, PreviousClose: 100}
	q.ComputeChange()
	assert.InDelta(t, 10.0, q.Change, 1e-9)
	assert.InDelta(t, 10.0, q.ChangePercent, 1e-9)
}
