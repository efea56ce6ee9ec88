package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
)

type GetHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetHistoryLogic {
	return &GetHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetHistory returns the cached bars newest first; an unknown symbol yields an
// empty list.
func (l *GetHistoryLogic) GetHistory(req *types.SymbolReq) ([]types.Bar, error) {
	bars, err := l.svcCtx.Repos.Bars.GetAll(l.ctx, req.Symbol)
	if err != nil {
		return nil, apperr.Internal("failed to fetch historical data", err)
	}
	return toBars(bars), nil
}
