package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/market"
)

type GetStockLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetStockLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetStockLogic {
	return &GetStockLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetStockLogic) GetStock(req *types.StockReq) (resp *types.StockResp, err error) {
	raw := req.Period
	if raw == "" {
		raw = l.svcCtx.Config.Refresh.DefaultPeriod
	}
	period, err := market.ParsePeriod(raw)
	if err != nil {
		return nil, apperr.Validation("unsupported period "+req.Period, err)
	}

	view, err := l.svcCtx.Refresher.Refresh(l.ctx, req.Symbol, period)
	if err != nil {
		return nil, refreshError(err)
	}

	q := view.Quote
	return &types.StockResp{
		Symbol:         q.Symbol,
		Name:           q.Name,
		Currency:       q.Currency,
		Exchange:       q.Exchange,
		Period:         period.String(),
		CurrentPrice:   q.CurrentPrice,
		PreviousClose:  q.PreviousClose,
		Change:         q.Change,
		ChangePercent:  q.ChangePercent,
		MarketCap:      view.MarketCapText,
		MarketCapValue: q.MarketCap,
		Volume:         view.VolumeText,
		VolumeValue:    q.Volume,
		PE:             q.PERatio,
		High52w:        q.High52Week,
		Low52w:         q.Low52Week,
		History:        toBars(view.History),
		Indicators:     toIndicators(view.Indicators),
	}, nil
}
