package indicators

import "math"

// Bands is a Bollinger envelope. Lower <= Middle <= Upper for any finite input.
type Bands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// SMA is the arithmetic mean of the first min(n, len(values)) entries of a
// newest-first series. An empty window yields NaN.
func SMA(values []float64, n int) float64 {
	window := leading(values, n)
	if len(window) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

// Bollinger computes the mean and population standard deviation over the
// first min(n, len(values)) entries of a newest-first series and returns
// mean ± k·σ. An empty window yields NaN bands.
func Bollinger(values []float64, n int, k float64) Bands {
	window := leading(values, n)
	if len(window) == 0 {
		nan := math.NaN()
		return Bands{Upper: nan, Middle: nan, Lower: nan}
	}
	mean := SMA(window, len(window))
	var sq float64
	for _, v := range window {
		d := v - mean
		sq += d * d
	}
	sigma := math.Sqrt(sq / float64(len(window)))
	return Bands{
		Upper:  mean + k*sigma,
		Middle: mean,
		Lower:  mean - k*sigma,
	}
}

func leading(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n > len(values) {
		n = len(values)
	}
	return values[:n]
}

// reversed returns a copy of values in the opposite order.
func reversed(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}

// lastFinite returns the last non-NaN value of s, or fallback.
func lastFinite(s []float64, fallback float64) (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if !math.IsNaN(s[i]) {
			return s[i], true
		}
	}
	return fallback, false
}
