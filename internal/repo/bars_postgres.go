package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"findash-api/pkg/market"
)

// Rows per multi-row INSERT; 8 params each keeps well under postgres' 65535 limit.
const insertChunk = 500

type barRow struct {
	Symbol string    `db:"symbol"`
	Ts     time.Time `db:"ts"`
	Date   string    `db:"date"`
	Open   float64   `db:"open"`
	High   float64   `db:"high"`
	Low    float64   `db:"low"`
	Close  float64   `db:"close"`
	Volume int64     `db:"volume"`
}

// PostgresBars stores bars in public.stock_data. ReplaceAll runs in one
// transaction holding a per-symbol advisory lock, so concurrent replaces of
// the same symbol are serialized and readers only see committed sets.
type PostgresBars struct {
	conn sqlx.SqlConn
}

func NewPostgresBars(conn sqlx.SqlConn) *PostgresBars {
	return &PostgresBars{conn: conn}
}

func (p *PostgresBars) ReplaceAll(ctx context.Context, symbol string, bars []market.Bar) error {
	symbol = normalizeSymbol(symbol)
	err := p.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		if _, err := session.ExecCtx(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, symbol); err != nil {
			return fmt.Errorf("lock %s: %w", symbol, err)
		}
		if _, err := session.ExecCtx(ctx, `DELETE FROM public.stock_data WHERE symbol = $1`, symbol); err != nil {
			return fmt.Errorf("delete %s: %w", symbol, err)
		}
		for start := 0; start < len(bars); start += insertChunk {
			end := min(start+insertChunk, len(bars))
			query, args := buildBarInsert(symbol, bars[start:end])
			if _, err := session.ExecCtx(ctx, query, args...); err != nil {
				return fmt.Errorf("insert %s: %w", symbol, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo: replace bars: %w", err)
	}
	return nil
}

func buildBarInsert(symbol string, bars []market.Bar) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO public.stock_data (symbol, ts, date, open, high, low, close, volume) VALUES `)
	args := make([]any, 0, len(bars)*8)
	for i, b := range bars {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 8
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7, n+8)
		args = append(args, symbol, b.Timestamp.UTC(), b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
	}
	return sb.String(), args
}

func (p *PostgresBars) GetAll(ctx context.Context, symbol string) ([]market.Bar, error) {
	symbol = normalizeSymbol(symbol)
	const q = `
SELECT symbol, ts, date, open, high, low, close, volume
FROM public.stock_data
WHERE symbol = $1
ORDER BY ts DESC`
	var rows []barRow
	if err := p.conn.QueryRowsCtx(ctx, &rows, q, symbol); err != nil {
		return nil, fmt.Errorf("repo: get bars %s: %w", symbol, err)
	}
	out := make([]market.Bar, 0, len(rows))
	for _, r := range rows {
		out = append(out, market.Bar{
			Symbol:    r.Symbol,
			Date:      r.Date,
			Timestamp: r.Ts.UTC(),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}
	return out, nil
}

func (p *PostgresBars) DeleteAll(ctx context.Context, symbol string) error {
	if _, err := p.conn.ExecCtx(ctx, `DELETE FROM public.stock_data WHERE symbol = $1`, normalizeSymbol(symbol)); err != nil {
		return fmt.Errorf("repo: delete bars: %w", err)
	}
	return nil
}
