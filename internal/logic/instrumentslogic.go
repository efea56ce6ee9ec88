package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/catalog"
)

type InstrumentsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewInstrumentsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *InstrumentsLogic {
	return &InstrumentsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *InstrumentsLogic) Instruments(req *types.InstrumentsReq) ([]types.Instrument, error) {
	cat := l.svcCtx.Catalog
	if strings.TrimSpace(req.Category) == "" {
		return toInstruments(cat.All()), nil
	}
	key, err := cat.ParseCategory(req.Category)
	if err != nil {
		return nil, apperr.Validation(err.Error(), err)
	}
	return toInstruments(cat.ByCategory(key)), nil
}

func (l *InstrumentsLogic) Search(req *types.SearchReq) []types.Instrument {
	return toInstruments(l.svcCtx.Catalog.Suggest(req.Q, req.Limit))
}

func (l *InstrumentsLogic) Categories() []types.Category {
	cat := l.svcCtx.Catalog
	infos := cat.Categories()
	out := make([]types.Category, 0, len(infos))
	for _, info := range infos {
		out = append(out, types.Category{
			Key:         string(info.Key),
			Name:        info.Name,
			Description: info.Description,
			Count:       len(cat.ByCategory(info.Key)),
		})
	}
	return out
}

func toInstruments(list []catalog.Instrument) []types.Instrument {
	out := make([]types.Instrument, 0, len(list))
	for _, inst := range list {
		out = append(out, types.Instrument{
			Symbol:      inst.Symbol,
			Name:        inst.Name,
			Category:    string(inst.Category),
			Description: inst.Description,
		})
	}
	return out
}
