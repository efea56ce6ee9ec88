package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type chatRow struct {
	ID        string         `db:"id"`
	Message   string         `db:"message"`
	Response  string         `db:"response"`
	Symbol    sql.NullString `db:"symbol"`
	CreatedAt time.Time      `db:"created_at"`
}

// PostgresTranscript appends turns to public.chat_messages. There is no update
// or delete path.
type PostgresTranscript struct {
	conn sqlx.SqlConn
}

func NewPostgresTranscript(conn sqlx.SqlConn) *PostgresTranscript {
	return &PostgresTranscript{conn: conn}
}

func (p *PostgresTranscript) Append(ctx context.Context, message, response, symbol string) (ChatTurn, error) {
	turn := ChatTurn{
		ID:        uuid.NewString(),
		Message:   message,
		Response:  response,
		Symbol:    normalizeSymbol(symbol),
		CreatedAt: time.Now().UTC(),
	}
	const q = `
INSERT INTO public.chat_messages (id, message, response, symbol, created_at)
VALUES ($1, $2, $3, $4, $5)`
	sym := sql.NullString{String: turn.Symbol, Valid: turn.Symbol != ""}
	if _, err := p.conn.ExecCtx(ctx, q, turn.ID, turn.Message, turn.Response, sym, turn.CreatedAt); err != nil {
		return ChatTurn{}, fmt.Errorf("repo: append chat turn: %w", err)
	}
	return turn, nil
}

func (p *PostgresTranscript) ListBySymbol(ctx context.Context, symbol string) ([]ChatTurn, error) {
	const q = `
SELECT id, message, response, symbol, created_at
FROM public.chat_messages
WHERE symbol = $1
ORDER BY created_at, seq`
	return p.list(ctx, q, normalizeSymbol(symbol))
}

func (p *PostgresTranscript) ListAll(ctx context.Context) ([]ChatTurn, error) {
	const q = `
SELECT id, message, response, symbol, created_at
FROM public.chat_messages
ORDER BY created_at, seq`
	return p.list(ctx, q)
}

func (p *PostgresTranscript) list(ctx context.Context, query string, args ...any) ([]ChatTurn, error) {
	var rows []chatRow
	if err := p.conn.QueryRowsCtx(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("repo: list chat turns: %w", err)
	}
	out := make([]ChatTurn, 0, len(rows))
	for _, r := range rows {
		out = append(out, ChatTurn{
			ID:        r.ID,
			Message:   r.Message,
			Response:  r.Response,
			Symbol:    r.Symbol.String,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return out, nil
}
