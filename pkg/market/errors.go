package market

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSymbolNotFound indicates the provider has no usable data for the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUnknownPeriod is returned by ParsePeriod for unsupported periods.
	ErrUnknownPeriod = errors.New("market: unknown period")
)

// ProviderError wraps transport, timeout, and parse failures from an adapter.
type ProviderError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("market provider %s: %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was caused by a deadline.
func (e *ProviderError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// NewProviderError builds a ProviderError unless err already is one or signals a missing symbol.
func NewProviderError(provider, symbol string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSymbolNotFound) {
		return err
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: provider, Symbol: symbol, Err: err}
}
