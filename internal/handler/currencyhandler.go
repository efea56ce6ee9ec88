package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/rest/httpx"

	"findash-api/internal/logic"
	"findash-api/internal/svc"
	"findash-api/internal/types"
)

// Rate table metadata travels in headers so the body stays a plain
// code-to-rate map.
const (
	headerRatesBase      = "X-Rates-Base"
	headerRatesFallback  = "X-Rates-Fallback"
	headerRatesFetchedAt = "X-Rates-Fetched-At"
)

func CurrenciesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewCurrencyLogic(r.Context(), svcCtx)
		httpx.OkJsonCtx(r.Context(), w, l.Currencies())
	}
}

func ExchangeRatesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExchangeRatesReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := logic.NewCurrencyLogic(r.Context(), svcCtx)
		result := l.ExchangeRates(&req)
		w.Header().Set(headerRatesBase, result.Table.Base)
		w.Header().Set(headerRatesFallback, strconv.FormatBool(result.Degraded))
		if !result.Table.FetchedAt.IsZero() {
			w.Header().Set(headerRatesFetchedAt, result.Table.FetchedAt.UTC().Format(time.RFC3339))
		}
		httpx.OkJsonCtx(r.Context(), w, result.Table.Rates)
	}
}

func ConvertHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ConvertReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := logic.NewCurrencyLogic(r.Context(), svcCtx)
		resp, err := l.Convert(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
