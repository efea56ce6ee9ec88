package market

import (
	"sort"
	"strings"
	"time"
)

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Validate rejects series that carry an explicit error or have no quote signal
// at all. Any one of price, market cap, or volume being non-zero is enough.
func Validate(series *Series) error {
	if series == nil {
		return ErrSymbolNotFound
	}
	if strings.TrimSpace(series.Error) != "" {
		return ErrSymbolNotFound
	}
	q := series.Quote
	if q.CurrentPrice == 0 && q.MarketCap == 0 && q.Volume == 0 {
		return ErrSymbolNotFound
	}
	return nil
}

// Normalize upper-cases symbols, drops empty bars, trims to the period window,
// and orders bars newest-first. The series is modified in place.
func Normalize(symbol string, period Period, series *Series) {
	if series == nil {
		return
	}
	symbol = NormalizeSymbol(symbol)
	series.Quote.Symbol = symbol
	if strings.TrimSpace(series.Quote.Name) == "" {
		series.Quote.Name = symbol
	}

	spec := period.Spec()
	bars := series.Bars[:0]
	for _, b := range series.Bars {
		if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
			continue
		}
		if b.Volume < 0 {
			b.Volume = 0
		}
		b.Symbol = symbol
		if b.Date == "" && !b.Timestamp.IsZero() {
			b.Date = b.Timestamp.Format(spec.DateLayout())
		}
		bars = append(bars, b)
	}
	SortNewestFirst(bars)
	if spec.Window > 0 && len(bars) > 0 {
		cutoff := bars[0].Timestamp.Add(-spec.Window)
		n := 0
		for n < len(bars) && !bars[n].Timestamp.Before(cutoff) {
			n++
		}
		bars = bars[:n]
	}
	series.Bars = bars
}

// SortNewestFirst orders bars by timestamp descending.
func SortNewestFirst(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.After(bars[j].Timestamp)
	})
}

// DateFor formats ts the way bars for period are labelled.
func DateFor(period Period, ts time.Time) string {
	return ts.Format(period.Spec().DateLayout())
}
