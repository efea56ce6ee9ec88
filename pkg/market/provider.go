package market

import "context"

// Provider fetches historical bars and quote metadata from an upstream source.
type Provider interface {
	// Name identifies the configured provider instance.
	Name() string
	// Fetch returns the parsed series for symbol over period. A missing symbol
	// is reported either as ErrSymbolNotFound or via Series.Error; transport and
	// parse failures are returned as *ProviderError.
	Fetch(ctx context.Context, symbol string, period Period) (*Series, error)
}

// PriceSource returns the latest traded price for a symbol.
type PriceSource interface {
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}
