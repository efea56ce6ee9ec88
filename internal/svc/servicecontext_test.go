package svc

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash-api/internal/config"
	"findash-api/internal/repo"
	"findash-api/pkg/assistant"
	"findash-api/pkg/llm"
	"findash-api/pkg/market"
)

func offlineConfig(t *testing.T) config.Config {
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
	return c
}

func TestNewOffline(t *testing.T) {
	ctx, err := New(offlineConfig(t))
	require.NoError(t, err)

	assert.Nil(t, ctx.DBConn)
	assert.Nil(t, ctx.Redis)
	assert.Nil(t, ctx.LLM)
	assert.IsType(t, &repo.MemoryBars{}, ctx.Repos.Bars)
	assert.Equal(t, "offline", ctx.DefaultMarket.Name())
	require.NotNil(t, ctx.Catalog)

	view, err := ctx.Refresher.Refresh(context.Background(), "AAPL", market.DefaultPeriod)
	require.NoError(t, err)
	assert.NotEmpty(t, view.History)

	rates, err := ctx.Rates.Rates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rates.Table.Rates["USD"])

	turn, err := ctx.Assistant.Ask(context.Background(), assistant.Question{Message: "hello", Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackAuth, turn.Response)
}

func TestNewUsesTestModelInTestEnv(t *testing.T) {
	c := offlineConfig(t)
	c.LLM.Value = &llm.Config{
		BaseURL:      "https://llm.example/v1/",
		APIKey:       "key",
		DefaultModel: "gemini-2.5-pro",
		TestModel:    "gemini-2.0-flash-lite",
		Timeout:      time.Second,
		MaxRetries:   1,
	}

	ctx, err := New(c)
	require.NoError(t, err)
	require.NotNil(t, ctx.LLM)
	assert.Equal(t, "gemini-2.0-flash-lite", ctx.LLM.GetConfig().DefaultModel)
	assert.Equal(t, "gemini-2.5-pro", c.LLM.Value.DefaultModel)

	c.Env = "prod"
	ctx, err = New(c)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", ctx.LLM.GetConfig().DefaultModel)
}
