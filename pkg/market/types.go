package market

import "time"

// Bar is a single OHLCV observation for a symbol.
type Bar struct {
	Symbol    string    `json:"symbol"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Quote captures the current-state snapshot reported alongside a series.
type Quote struct {
	Symbol        string  // Upper-case ticker
	Name          string  // Display name, falls back to Symbol
	Currency      string  // Quote currency reported upstream, e.g. "USD"
	Exchange      string  // Listing exchange when available
	CurrentPrice  float64 // Latest regular-market price
	PreviousClose float64
	Change        float64 // CurrentPrice - PreviousClose
	ChangePercent float64
	MarketCap     float64
	Volume        int64
	PERatio       float64
	High52Week    float64
	Low52Week     float64
}

// Series is the strictly parsed result of a provider fetch.
// Error carries an explicit upstream rejection (e.g. "symbol not found").
type Series struct {
	Quote Quote
	Bars  []Bar
	Error string
}

// ComputeChange fills Change and ChangePercent from CurrentPrice and PreviousClose.
func (q *Quote) ComputeChange() {
	if q.PreviousClose <= 0 {
		return
	}
	q.Change = q.CurrentPrice - q.PreviousClose
	q.ChangePercent = q.Change / q.PreviousClose * 100
}

// Closes returns the close prices in the order the bars are stored.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
