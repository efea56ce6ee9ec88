package logic

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/market"
)

var csvHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// CSVExport is a rendered export file.
type CSVExport struct {
	Filename string
	Data     []byte
}

type ExportCSVLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportCSVLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportCSVLogic {
	return &ExportCSVLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportCSVLogic) ExportCSV(req *types.SymbolReq) (*CSVExport, error) {
	symbol := market.NormalizeSymbol(req.Symbol)
	bars, err := l.svcCtx.Repos.Bars.GetAll(l.ctx, symbol)
	if err != nil {
		return nil, apperr.Internal("failed to export data", err)
	}
	if len(bars) == 0 {
		return nil, apperr.NotFound(msgNoData, nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, apperr.Internal("failed to export data", err)
	}
	for _, b := range bars {
		row := []string{
			b.Date,
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			strconv.FormatInt(b.Volume, 10),
		}
		if err := w.Write(row); err != nil {
			return nil, apperr.Internal("failed to export data", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperr.Internal("failed to export data", err)
	}
	l.Infof("export: %d rows for %s", len(bars), symbol)
	return &CSVExport{Filename: symbol + "_data.csv", Data: buf.Bytes()}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
