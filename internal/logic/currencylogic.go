package logic

import (
	"context"
	"errors"
	"math"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/currency"
)

type CurrencyLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCurrencyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CurrencyLogic {
	return &CurrencyLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Currencies lists the supported currencies with their current rate against
// the US dollar.
func (l *CurrencyLogic) Currencies() []types.Currency {
	table := l.ExchangeRates(&types.ExchangeRatesReq{Base: currency.BaseUSD}).Table
	supported := currency.Supported()
	out := make([]types.Currency, 0, len(supported))
	for _, c := range supported {
		rate, ok := table.Rate(c.Code)
		if !ok {
			rate = 1
		}
		out = append(out, types.Currency{Code: c.Code, Name: c.Name, Rate: rate, Symbol: c.Symbol})
	}
	return out
}

// ExchangeRates never fails. Upstream errors and unsupported bases are served
// from the hardcoded table with Degraded set.
func (l *CurrencyLogic) ExchangeRates(req *types.ExchangeRatesReq) currency.Result {
	result, err := l.svcCtx.Rates.Rates(l.ctx, req.Base)
	if err != nil {
		l.Slowf("exchange rates for base %q unavailable, serving USD fallback: %v", req.Base, err)
		return currency.Result{Table: currency.FallbackTable(currency.BaseUSD), Degraded: true}
	}
	return result
}

func (l *CurrencyLogic) Convert(req *types.ConvertReq) (*types.ConvertResp, error) {
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, apperr.Validation("amount must be a finite number", nil)
	}
	for _, code := range []string{req.From, req.To} {
		if _, ok := currency.Lookup(code); !ok {
			return nil, apperr.Validation("unsupported currency "+code, currency.ErrUnsupported)
		}
	}
	result, err := l.svcCtx.Rates.Rates(l.ctx, currency.BaseUSD)
	if err != nil {
		return nil, currencyError(err)
	}
	from, to := currency.NormalizeCode(req.From), currency.NormalizeCode(req.To)
	converted := currency.Convert(req.Amount, from, to, result.Table)
	return &types.ConvertResp{
		Amount:    req.Amount,
		From:      from,
		To:        to,
		Result:    converted,
		Formatted: currency.Format(converted, to),
		Fallback:  result.Degraded,
	}, nil
}

func currencyError(err error) error {
	if errors.Is(err, currency.ErrUnsupported) {
		return apperr.Validation(err.Error(), err)
	}
	return apperr.Internal("failed to load exchange rates", err)
}
