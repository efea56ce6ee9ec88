package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/pathvar"

	"findash-api/internal/apperr"
	"findash-api/internal/config"
	"findash-api/internal/refresh"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/currency"
	"findash-api/pkg/market"
)

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	mkt, err := market.LoadConfigFromReader(strings.NewReader(`
default: offline
providers:
  offline:
    type: sim
`))
	require.NoError(t, err)

	c := config.Config{
		Env:      "test",
		TTL:      config.CacheTTL{Short: 10, Medium: 60, Long: 300},
		Refresh:  config.RefreshConf{Timeout: time.Second, DefaultPeriod: "1mo"},
		Chat:     config.ChatConf{MaxMessageLength: 2000, Timeout: time.Second},
		Currency: config.CurrencyConf{Source: "static", Timeout: time.Second},
	}
	c.Market.Value = mkt

	svcCtx, err := svc.New(c)
	require.NoError(t, err)
	return svcCtx
}

func withSymbol(r *http.Request, symbol string) *http.Request {
	return pathvar.WithVars(r, map[string]string{"symbol": symbol})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestGetStockHandler(t *testing.T) {
	svcCtx := newTestContext(t)

	req := withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/aapl?period=1mo", nil), "aapl")
	rec := httptest.NewRecorder()
	GetStockHandler(svcCtx)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.StockResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Equal(t, "1mo", resp.Period)
	assert.NotEmpty(t, resp.History)
	assert.Greater(t, resp.CurrentPrice, 0.0)

	stored, err := svcCtx.Repos.Bars.GetAll(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Len(t, stored, len(resp.History))
}

func TestGetStockHandlerUnknownSymbol(t *testing.T) {
	svcCtx := newTestContext(t)

	req := withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/FAKE123", nil), "FAKE123")
	rec := httptest.NewRecorder()
	GetStockHandler(svcCtx)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "symbol not found", decodeError(t, rec))

	stored, err := svcCtx.Repos.Bars.GetAll(context.Background(), "FAKE123")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

type downProvider struct{}

func (downProvider) Name() string { return "down" }

func (downProvider) Fetch(_ context.Context, symbol string, _ market.Period) (*market.Series, error) {
	return nil, market.NewProviderError("down", symbol, errors.New("upstream 502"))
}

func TestGetStockHandlerProviderFailure(t *testing.T) {
	svcCtx := newTestContext(t)
	svcCtx.Refresher = refresh.NewService(downProvider{}, svcCtx.Repos.Bars)

	req := withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/AAPL", nil), "AAPL")
	rec := httptest.NewRecorder()
	GetStockHandler(svcCtx)(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	msg := decodeError(t, rec)
	assert.Equal(t, apperr.GenericMessage, msg)
	assert.NotContains(t, msg, "502")

	stored, err := svcCtx.Repos.Bars.GetAll(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGetStockHandlerBadPeriod(t *testing.T) {
	svcCtx := newTestContext(t)

	req := withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/AAPL?period=7w", nil), "AAPL")
	rec := httptest.NewRecorder()
	GetStockHandler(svcCtx)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestExportCSVHandler(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	ExportCSVHandler(svcCtx)(rec, withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/MSFT/export", nil), "MSFT"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No data found for symbol", decodeError(t, rec))

	_, err := svcCtx.Refresher.Refresh(context.Background(), "MSFT", market.DefaultPeriod)
	require.NoError(t, err)
	bars, err := svcCtx.Repos.Bars.GetAll(context.Background(), "MSFT")
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	ExportCSVHandler(svcCtx)(rec, withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/MSFT/export", nil), "MSFT"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="MSFT_data.csv"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(bars)+1)
	assert.Equal(t, []string{"Date", "Open", "High", "Low", "Close", "Volume"}, records[0])
	for _, record := range records[1:] {
		assert.Len(t, record, 6)
	}
}

func TestGetHistoryHandler(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	GetHistoryHandler(svcCtx)(rec, withSymbol(httptest.NewRequest(http.MethodGet, "/api/stock/NVDA/history", nil), "NVDA"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestChatHandlerRejectsEmptyMessage(t *testing.T) {
	svcCtx := newTestContext(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"   ","symbol":"AAPL"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ChatHandler(svcCtx)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message is required", decodeError(t, rec))

	turns, err := svcCtx.Repos.Transcript.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestChatHandlerRecordsTurn(t *testing.T) {
	svcCtx := newTestContext(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"How is it doing?","symbol":"aapl"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ChatHandler(svcCtx)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.ChatResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Response)
	require.NotNil(t, resp.Symbol)
	assert.Equal(t, "AAPL", *resp.Symbol)

	rec = httptest.NewRecorder()
	ChatHistoryBySymbolHandler(svcCtx)(rec, withSymbol(httptest.NewRequest(http.MethodGet, "/api/chat/AAPL", nil), "AAPL"))
	require.Equal(t, http.StatusOK, rec.Code)
	var history []types.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "How is it doing?", history[0].Message)

	rec = httptest.NewRecorder()
	ChatHistoryHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 1)
}

type failingSource struct{}

func (failingSource) Rates(context.Context, string) (currency.Table, error) {
	return currency.Table{}, errors.New("upstream down")
}

func TestExchangeRatesHandlerFallsBack(t *testing.T) {
	svcCtx := newTestContext(t)
	svcCtx.Rates = currency.NewService(failingSource{})

	rec := httptest.NewRecorder()
	ExchangeRatesHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/exchange-rates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(headerRatesFallback))
	assert.Equal(t, "USD", rec.Header().Get(headerRatesBase))

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["USD"])
	assert.Equal(t, 15000.0, body["IDR"])
	assert.Contains(t, body, "EUR")
}

func TestExchangeRatesHandlerRebases(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	ExchangeRatesHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/exchange-rates?base=idr", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "false", rec.Header().Get(headerRatesFallback))
	assert.Equal(t, "IDR", rec.Header().Get(headerRatesBase))
	assert.NotEmpty(t, rec.Header().Get(headerRatesFetchedAt))

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["IDR"])
	assert.InDelta(t, 1.0/15000, body["USD"], 1e-12)
}

func TestExchangeRatesHandlerUnsupportedBase(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	ExchangeRatesHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/exchange-rates?base=XYZ", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(headerRatesFallback))
	assert.Equal(t, "USD", rec.Header().Get(headerRatesBase))

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["USD"])
	assert.NotContains(t, body, "XYZ")
}

func TestCurrenciesHandler(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	CurrenciesHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/currencies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var list []types.Currency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, len(currency.Supported()))

	rates := make(map[string]float64, len(list))
	for _, c := range list {
		assert.NotEmpty(t, c.Symbol, c.Code)
		rates[c.Code] = c.Rate
	}
	assert.Equal(t, 1.0, rates["USD"])
	assert.Equal(t, 0.85, rates["EUR"])
	assert.Equal(t, 110.0, rates["JPY"])
}

func TestSymbolNewsHandler(t *testing.T) {
	svcCtx := newTestContext(t)

	req := withSymbol(httptest.NewRequest(http.MethodGet, "/api/news/aapl", nil), "aapl")
	rec := httptest.NewRecorder()
	SymbolNewsHandler(svcCtx)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.NewsResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	require.NotEmpty(t, resp.Articles)
	for _, a := range resp.Articles {
		assert.Contains(t, a.RelatedSymbols, "AAPL")
	}
}

func TestRegisterHandlers(t *testing.T) {
	var c rest.RestConf
	require.NoError(t, conf.FillDefault(&c))
	c.Name = "findash-test"

	server, err := rest.NewServer(c)
	require.NoError(t, err)
	RegisterHandlers(server, newTestContext(t))

	registered := make(map[string]bool)
	for _, r := range server.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/stock/:symbol",
		"GET /api/stock/:symbol/history",
		"GET /api/stock/:symbol/export",
		"POST /api/chat",
		"GET /api/chat/:symbol",
		"GET /api/news",
		"GET /api/news/:symbol",
		"GET /api/currencies",
		"GET /api/exchange-rates",
		"GET /healthz",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestConvertHandler(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	ConvertHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/convert?amount=100&from=USD&to=USD", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.ConvertResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Result)
	assert.Equal(t, "$ 100.00", resp.Formatted)

	rec = httptest.NewRecorder()
	ConvertHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/convert?amount=1&from=USD&to=XYZ", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInstrumentHandlers(t *testing.T) {
	svcCtx := newTestContext(t)

	rec := httptest.NewRecorder()
	InstrumentsHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/instruments?category=crypto", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var instruments []types.Instrument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &instruments))
	require.NotEmpty(t, instruments)
	for _, inst := range instruments {
		assert.Equal(t, "crypto", inst.Category)
	}

	rec = httptest.NewRecorder()
	InstrumentsHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/instruments?category=art", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	SearchInstrumentsHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/instruments/search?q=AAPL", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &instruments))
	require.NotEmpty(t, instruments)
	assert.Equal(t, "AAPL", instruments[0].Symbol)

	rec = httptest.NewRecorder()
	CategoriesHandler(svcCtx)(rec, httptest.NewRequest(http.MethodGet, "/api/instruments/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []types.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Len(t, categories, 5)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
