// Package currency converts and formats monetary amounts and serves exchange
// rate tables with a hardcoded fallback.
package currency

import (
	"errors"
	"strings"
)

// ErrUnsupported marks a currency code outside the supported set.
var ErrUnsupported = errors.New("unsupported currency")

// Currency describes a supported display currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var supported = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
}

// Currencies quoted without minor units.
var zeroDecimal = map[string]bool{
	"JPY": true,
	"KRW": true,
	"IDR": true,
}

// Supported returns the display currencies in catalog order.
func Supported() []Currency {
	out := make([]Currency, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a supported currency by code, case-insensitively.
func Lookup(code string) (Currency, bool) {
	code = NormalizeCode(code)
	for _, c := range supported {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// NormalizeCode trims and upper-cases an ISO code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsZeroDecimal reports whether code is formatted without minor units.
func IsZeroDecimal(code string) bool {
	return zeroDecimal[NormalizeCode(code)]
}
