package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/market"
	"findash-api/pkg/news"
)

type NewsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewNewsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NewsLogic {
	return &NewsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// News returns instrument headlines when a symbol is given and the general
// market feed otherwise.
func (l *NewsLogic) News(req *types.NewsReq) (resp *types.NewsResp, err error) {
	now := l.svcCtx.Now()
	symbol := market.NormalizeSymbol(req.Symbol)

	var articles []news.Article
	if symbol != "" {
		var name string
		if inst, ok := l.svcCtx.Catalog.Lookup(symbol); ok {
			name = inst.Name
		}
		articles = news.Articles(symbol, name, now)
	} else {
		articles = news.Market(req.Category, req.Q, now)
	}

	resp = &types.NewsResp{Symbol: symbol, Articles: make([]types.NewsArticle, 0, len(articles))}
	for _, a := range articles {
		resp.Articles = append(resp.Articles, types.NewsArticle{
			ID:             a.ID,
			Title:          a.Title,
			Summary:        a.Summary,
			URL:            a.URL,
			PublishedAt:    a.PublishedAt,
			Source:         a.Source,
			Category:       a.Category,
			Sentiment:      string(a.Sentiment),
			RelatedSymbols: a.RelatedSymbols,
		})
	}
	return resp, nil
}
