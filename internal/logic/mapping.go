package logic

import (
	"errors"

	"findash-api/internal/apperr"
	"findash-api/internal/refresh"
	"findash-api/internal/repo"
	"findash-api/internal/types"
	"findash-api/pkg/market"
	"findash-api/pkg/market/indicators"
)

const (
	msgSymbolNotFound = "symbol not found"
	msgNoData         = "No data found for symbol"
)

func toBars(bars []market.Bar) []types.Bar {
	out := make([]types.Bar, 0, len(bars))
	for _, b := range bars {
		out = append(out, types.Bar{
			Date:      b.Date,
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}
	return out
}

func toIndicators(set indicators.Set) *types.Indicators {
	if !set.Available {
		return nil
	}
	return &types.Indicators{
		RSI: set.RSI,
		MACD: types.MACD{
			Value:     set.MACD.Value,
			Signal:    set.MACD.Signal,
			Histogram: set.MACD.Histogram,
		},
		Bollinger: types.Bollinger{
			Upper:  set.Bollinger.Upper,
			Middle: set.Bollinger.Middle,
			Lower:  set.Bollinger.Lower,
		},
		SMA20:  set.SMA20,
		SMA50:  set.SMA50,
		SMA200: set.SMA200,
		ATR14:  set.ATR14,
	}
}

func toChatMessage(turn repo.ChatTurn) types.ChatMessage {
	return types.ChatMessage{
		ID:        turn.ID,
		Message:   turn.Message,
		Response:  turn.Response,
		Symbol:    symbolOrNil(turn.Symbol),
		CreatedAt: turn.CreatedAt,
	}
}

func symbolOrNil(symbol string) *string {
	if symbol == "" {
		return nil
	}
	return &symbol
}

// refreshError translates refresh protocol failures into the client taxonomy.
func refreshError(err error) error {
	var rerr *refresh.Error
	if errors.As(err, &rerr) && rerr.NotFound() {
		return apperr.NotFound(msgSymbolNotFound, err)
	}
	if errors.Is(err, market.ErrSymbolNotFound) {
		return apperr.NotFound(msgSymbolNotFound, err)
	}
	return apperr.Provider("failed to fetch stock data", err)
}
