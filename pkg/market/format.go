package market

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

const notAvailable = "N/A"

// FormatMarketCap renders a capitalisation as "2.50T", "1.20B", "3.00M",
// a grouped integer below one million, or "N/A" when absent.
func FormatMarketCap(v float64) string {
	switch {
	case math.IsNaN(v) || v <= 0:
		return notAvailable
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return humanize.Comma(int64(math.Round(v)))
	}
}

// FormatVolume renders traded volume as "50.0M", "12.3K", or a plain integer.
func FormatVolume(v int64) string {
	switch {
	case v <= 0:
		return notAvailable
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1e6)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", float64(v)/1e3)
	default:
		return fmt.Sprintf("%d", v)
	}
}
