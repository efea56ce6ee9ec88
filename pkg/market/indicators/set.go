package indicators

import (
	"math"

	"findash-api/pkg/market"
)

const (
	rsiPeriod       = 14
	macdFast        = 12
	macdSlow        = 26
	macdSignal      = 9
	bollingerPeriod = 20
	bollingerWidth  = 2.0
	atrPeriod       = 14

	neutralRSI = 50.0
)

// MACDValue is the latest point of the MACD series.
type MACDValue struct {
	Value     float64 `json:"value"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// Set is the indicator snapshot for a bar series. Values never contain NaN;
// indicators still inside their warm-up report RSI 50 and zero otherwise.
type Set struct {
	Available bool      `json:"available"`
	Bars      int       `json:"bars"`
	RSI       float64   `json:"rsi"`
	MACD      MACDValue `json:"macd"`
	Bollinger Bands     `json:"bollinger"`
	SMA20     float64   `json:"sma20"`
	SMA50     float64   `json:"sma50"`
	SMA200    float64   `json:"sma200"`
	ATR14     float64   `json:"atr14"`
}

// Unavailable is returned for an empty series.
var Unavailable = Set{}

// Compute derives the indicator set from newest-first bars, the order the
// bar repository returns. An empty input returns Unavailable.
func Compute(bars []market.Bar) Set {
	if len(bars) == 0 {
		return Unavailable
	}

	newestFirst := market.Closes(bars)
	oldestFirst := reversed(newestFirst)

	set := Set{
		Available: true,
		Bars:      len(bars),
		Bollinger: Bollinger(newestFirst, bollingerPeriod, bollingerWidth),
		SMA20:     SMA(newestFirst, 20),
		SMA50:     SMA(newestFirst, 50),
		SMA200:    SMA(newestFirst, 200),
	}

	set.RSI, _ = lastFinite(RSI(oldestFirst, rsiPeriod), neutralRSI)

	macd, signal, hist := MACD(oldestFirst, macdFast, macdSlow, macdSignal)
	set.MACD.Value, _ = lastFinite(macd, 0)
	set.MACD.Signal, _ = lastFinite(signal, 0)
	set.MACD.Histogram, _ = lastFinite(hist, 0)

	candles := make([]Candle, len(bars))
	for i, b := range bars {
		candles[len(bars)-1-i] = Candle{High: b.High, Low: b.Low, Close: b.Close}
	}
	set.ATR14, _ = lastFinite(ATR(candles, atrPeriod), 0)

	return set.sanitized()
}

func (s Set) sanitized() Set {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}
	s.Bollinger = Bands{Upper: fix(s.Bollinger.Upper), Middle: fix(s.Bollinger.Middle), Lower: fix(s.Bollinger.Lower)}
	s.SMA20, s.SMA50, s.SMA200 = fix(s.SMA20), fix(s.SMA50), fix(s.SMA200)
	s.ATR14 = fix(s.ATR14)
	s.MACD = MACDValue{Value: fix(s.MACD.Value), Signal: fix(s.MACD.Signal), Histogram: fix(s.MACD.Histogram)}
	return s
}
