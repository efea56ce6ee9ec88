package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/market"
)

type GetInsightLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetInsightLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetInsightLogic {
	return &GetInsightLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetInsight summarises the cached series; the symbol must have been loaded
// through the stock endpoint first.
func (l *GetInsightLogic) GetInsight(req *types.SymbolReq) (*types.InsightResp, error) {
	symbol := market.NormalizeSymbol(req.Symbol)
	bars, err := l.svcCtx.Repos.Bars.GetAll(l.ctx, symbol)
	if err != nil {
		return nil, apperr.Internal("failed to load cached bars", err)
	}
	if len(bars) == 0 {
		return nil, apperr.NotFound(msgNoData, nil)
	}
	return &types.InsightResp{
		Symbol:  symbol,
		Insight: l.svcCtx.Assistant.Insight(l.ctx, symbol, bars),
	}, nil
}
