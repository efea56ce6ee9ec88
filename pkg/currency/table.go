package currency

import "time"

// BaseUSD is the base of the hardcoded fallback rates.
const BaseUSD = "USD"

// Units of each currency per one US dollar.
var fallbackUSD = map[string]float64{
	"USD": 1,
	"IDR": 15000,
	"EUR": 0.85,
	"GBP": 0.75,
	"JPY": 110,
	"CNY": 7,
	"KRW": 1200,
	"SGD": 1.35,
	"MYR": 4.2,
	"THB": 33,
}

// Table maps currency codes to units per one unit of Base. Rates[Base] is 1.
type Table struct {
	Base      string             `msgpack:"base"`
	Rates     map[string]float64 `msgpack:"rates"`
	FetchedAt time.Time          `msgpack:"fetched_at"`
}

// Rate returns the rate for code and whether it is present.
func (t Table) Rate(code string) (float64, bool) {
	r, ok := t.Rates[NormalizeCode(code)]
	return r, ok && r > 0
}

// Rebase re-expresses the table relative to base. It returns false when the
// table has no usable rate for base.
func (t Table) Rebase(base string) (Table, bool) {
	base = NormalizeCode(base)
	pivot, ok := t.Rate(base)
	if !ok {
		return Table{}, false
	}
	rates := make(map[string]float64, len(t.Rates))
	for code, r := range t.Rates {
		rates[code] = r / pivot
	}
	rates[base] = 1
	return Table{Base: base, Rates: rates, FetchedAt: t.FetchedAt}, true
}

// FallbackTable returns the hardcoded table rebased to base. Unknown bases
// yield the USD table.
func FallbackTable(base string) Table {
	rates := make(map[string]float64, len(fallbackUSD))
	for code, r := range fallbackUSD {
		rates[code] = r
	}
	usd := Table{Base: BaseUSD, Rates: rates}
	if rebased, ok := usd.Rebase(base); ok {
		return rebased
	}
	return usd
}
