// Package repo stores price bars and chat transcripts, in memory or in postgres.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"findash-api/pkg/market"
)

// BarRepository owns the cached bar series, one partition per symbol.
type BarRepository interface {
	// ReplaceAll swaps the stored series for symbol. Readers see either the
	// previous set or the new one, never a mix.
	ReplaceAll(ctx context.Context, symbol string, bars []market.Bar) error
	// GetAll returns bars newest-first; unknown symbols yield an empty slice.
	GetAll(ctx context.Context, symbol string) ([]market.Bar, error)
	DeleteAll(ctx context.Context, symbol string) error
}

// ChatTurn is one question and answer exchange.
type ChatTurn struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Symbol    string    `json:"symbol,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TranscriptStore is an append-only chat log.
type TranscriptStore interface {
	Append(ctx context.Context, message, response, symbol string) (ChatTurn, error)
	// ListBySymbol and ListAll return turns oldest-first.
	ListBySymbol(ctx context.Context, symbol string) ([]ChatTurn, error)
	ListAll(ctx context.Context) ([]ChatTurn, error)
}

// Repositories bundles the two stores.
type Repositories struct {
	Bars       BarRepository
	Transcript TranscriptStore
}

// New returns postgres-backed stores when conn is non-nil and in-memory ones otherwise.
func New(conn sqlx.SqlConn) Repositories {
	if conn == nil {
		return Repositories{
			Bars:       NewMemoryBars(),
			Transcript: NewMemoryTranscript(),
		}
	}
	return Repositories{
		Bars:       NewPostgresBars(conn),
		Transcript: NewPostgresTranscript(conn),
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
