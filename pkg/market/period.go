package market

import (
	"fmt"
	"strings"
	"time"
)

// Period is a user-facing time range such as "1mo".
type Period string

// DefaultPeriod is used when a request omits the period.
const DefaultPeriod Period = "1mo"

// PeriodSpec is the upstream range/interval pair requested for a Period.
type PeriodSpec struct {
	Range    string
	Interval string
	// Window trims the returned series to the trailing duration when non-zero.
	Window time.Duration
}

// Intraday reports whether bars are sampled more often than once per day.
func (s PeriodSpec) Intraday() bool {
	return strings.HasSuffix(s.Interval, "m") && !strings.HasSuffix(s.Interval, "mo") ||
		strings.HasSuffix(s.Interval, "h")
}

// DateLayout returns the layout used for Bar.Date.
func (s PeriodSpec) DateLayout() string {
	if s.Intraday() {
		return "2006-01-02 15:04"
	}
	return "2006-01-02"
}

var periodTable = map[Period]PeriodSpec{
	"1h":  {Range: "1d", Interval: "1m", Window: time.Hour},
	"1d":  {Range: "1d", Interval: "5m"},
	"5d":  {Range: "5d", Interval: "15m"},
	"1wk": {Range: "5d", Interval: "30m"},
	"1mo": {Range: "1mo", Interval: "1d"},
	"3mo": {Range: "3mo", Interval: "1d"},
	"6mo": {Range: "6mo", Interval: "1d"},
	"ytd": {Range: "ytd", Interval: "1d"},
	"1y":  {Range: "1y", Interval: "1d"},
	"2y":  {Range: "2y", Interval: "1wk"},
	"5y":  {Range: "5y", Interval: "1wk"},
	"max": {Range: "max", Interval: "1mo"},
}

// ParsePeriod normalises raw into a known Period. Empty input yields DefaultPeriod.
func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return DefaultPeriod, nil
	}
	if _, ok := periodTable[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, raw)
	}
	return p, nil
}

// Spec returns the upstream range/interval for p, defaulting to DefaultPeriod.
func (p Period) Spec() PeriodSpec {
	if spec, ok := periodTable[p]; ok {
		return spec
	}
	return periodTable[DefaultPeriod]
}

func (p Period) String() string { return string(p) }

// Periods lists the supported periods.
func Periods() []Period {
	return []Period{"1h", "1d", "5d", "1wk", "1mo", "3mo", "6mo", "ytd", "1y", "2y", "5y", "max"}
}
