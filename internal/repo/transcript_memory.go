package repo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryTranscript is an append-only in-process chat log.
type MemoryTranscript struct {
	mu    sync.Mutex
	turns []ChatTurn
	now   func() time.Time
}

func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{now: time.Now}
}

func (m *MemoryTranscript) Append(_ context.Context, message, response, symbol string) (ChatTurn, error) {
	turn := ChatTurn{
		ID:        uuid.NewString(),
		Message:   message,
		Response:  response,
		Symbol:    normalizeSymbol(symbol),
		CreatedAt: m.now().UTC(),
	}
	m.mu.Lock()
	m.turns = append(m.turns, turn)
	m.mu.Unlock()
	return turn, nil
}

func (m *MemoryTranscript) ListBySymbol(_ context.Context, symbol string) ([]ChatTurn, error) {
	symbol = normalizeSymbol(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatTurn, 0)
	for _, t := range m.turns {
		if strings.EqualFold(t.Symbol, symbol) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemoryTranscript) ListAll(_ context.Context) ([]ChatTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatTurn, len(m.turns))
	copy(out, m.turns)
	return out, nil
}
