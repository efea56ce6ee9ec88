package repo

import (
	"context"
	"sync"

	"findash-api/pkg/market"
)

// MemoryBars keeps each symbol's series as an immutable slice that is swapped
// whole on replace.
type MemoryBars struct {
	mu     sync.RWMutex
	series map[string][]market.Bar
}

func NewMemoryBars() *MemoryBars {
	return &MemoryBars{series: make(map[string][]market.Bar)}
}

func (m *MemoryBars) ReplaceAll(_ context.Context, symbol string, bars []market.Bar) error {
	symbol = normalizeSymbol(symbol)
	next := make([]market.Bar, len(bars))
	copy(next, bars)
	for i := range next {
		next[i].Symbol = symbol
	}
	market.SortNewestFirst(next)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(next) == 0 {
		delete(m.series, symbol)
		return nil
	}
	m.series[symbol] = next
	return nil
}

func (m *MemoryBars) GetAll(_ context.Context, symbol string) ([]market.Bar, error) {
	m.mu.RLock()
	stored := m.series[normalizeSymbol(symbol)]
	m.mu.RUnlock()

	out := make([]market.Bar, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *MemoryBars) DeleteAll(_ context.Context, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.series, normalizeSymbol(symbol))
	return nil
}
