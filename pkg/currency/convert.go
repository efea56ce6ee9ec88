package currency

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/zeromicro/go-zero/core/logx"
)

// Convert moves amount from one currency to another through the table's base:
// amount / rates[from] * rates[to]. Identical codes return amount unchanged.
// A code missing from the table is treated as rate 1.0 and logged.
func Convert(amount float64, from, to string, table Table) float64 {
	from, to = NormalizeCode(from), NormalizeCode(to)
	if from == to {
		return amount
	}
	return amount / rateOrOne(table, from) * rateOrOne(table, to)
}

func rateOrOne(table Table, code string) float64 {
	if r, ok := table.Rate(code); ok {
		return r
	}
	logx.Slowf("currency: no rate for %s in %s table, using 1.0", code, table.Base)
	return 1
}

// Format renders amount as "<symbol> <number>". Zero-decimal currencies are
// rounded and grouped (rupiah with dots, yen and won with commas); all others
// get two ungrouped decimals. Codes without a registered symbol use the code.
func Format(amount float64, code string) string {
	code = NormalizeCode(code)
	symbol := code
	if c, ok := Lookup(code); ok && c.Symbol != "" {
		symbol = c.Symbol
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return symbol + " N/A"
	}
	switch {
	case code == "IDR":
		return symbol + " " + humanize.FormatInteger("#.###,", int(math.Round(amount)))
	case IsZeroDecimal(code):
		return symbol + " " + humanize.Comma(int64(math.Round(amount)))
	default:
		return symbol + " " + strconv.FormatFloat(amount, 'f', 2, 64)
	}
}
