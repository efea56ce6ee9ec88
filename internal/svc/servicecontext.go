package svc

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"findash-api/internal/cache"
	"findash-api/internal/config"
	"findash-api/internal/persistence/migrate"
	"findash-api/internal/refresh"
	"findash-api/internal/repo"
	"findash-api/pkg/assistant"
	"findash-api/pkg/catalog"
	"findash-api/pkg/currency"
	llmpkg "findash-api/pkg/llm"
	marketpkg "findash-api/pkg/market"
	"findash-api/pkg/market/exchanges/yahoo"
	"findash-api/pkg/prompt"

	_ "findash-api/pkg/market/exchanges/sim"
)

type ServiceContext struct {
	Config config.Config
	TTL    cache.TTLSet

	// Optional stores; nil when not configured.
	DBConn sqlx.SqlConn
	Redis  *redis.Redis

	Repos           repo.Repositories
	MarketProviders map[string]marketpkg.Provider
	DefaultMarket   marketpkg.Provider
	Refresher       *refresh.Service
	Rates           *currency.Service
	LLM             llmpkg.LLMClient
	Assistant       *assistant.Assistant
	Catalog         *catalog.Catalog

	Now func() time.Time
}

// NewServiceContext builds the dependency graph and exits on failure.
func NewServiceContext(c config.Config) *ServiceContext {
	ctx, err := New(c)
	logx.Must(err)
	return ctx
}

// New builds the dependency graph. Postgres and redis are only connected when
// configured; otherwise repositories are in memory and rates are not cached.
func New(c config.Config) (*ServiceContext, error) {
	svc := &ServiceContext{
		Config: c,
		TTL:    cache.NewTTLSet(c.TTL),
		Now:    time.Now,
	}

	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		db, err := conn.RawDB()
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(c.Postgres.MaxOpen)
		db.SetMaxIdleConns(c.Postgres.MaxIdle)
		if c.Postgres.AutoMigrate {
			if err := migrate.Up(db); err != nil {
				return nil, err
			}
		}
		svc.DBConn = conn
	}
	svc.Repos = repo.New(svc.DBConn)

	if c.Redis.Host != "" {
		rds, err := redis.NewRedis(c.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		svc.Redis = rds
	}

	if err := svc.initMarket(); err != nil {
		return nil, err
	}

	refreshOpts := []refresh.Option{refresh.WithTimeout(c.Refresh.Timeout)}
	if svc.Redis != nil {
		refreshOpts = append(refreshOpts, refresh.WithQuoteCache(cache.NewQuoteCache(svc.Redis, cache.QuoteSnapshotTTL(svc.TTL))))
	}
	svc.Refresher = refresh.NewService(svc.DefaultMarket, svc.Repos.Bars, refreshOpts...)

	svc.Rates = svc.newRateService()

	if err := svc.initAssistant(); err != nil {
		return nil, err
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	svc.Catalog = cat
	return svc, nil
}

func (svc *ServiceContext) initMarket() error {
	section := svc.Config.Market.Value
	if section == nil {
		provider := yahoo.NewProvider("yahoo")
		svc.DefaultMarket = provider
		svc.MarketProviders = map[string]marketpkg.Provider{provider.Name(): provider}
		return nil
	}
	provider, providers, err := section.DefaultProvider()
	if err != nil {
		return fmt.Errorf("build market providers: %w", err)
	}
	svc.DefaultMarket = provider
	svc.MarketProviders = providers
	return nil
}

func (svc *ServiceContext) newRateService() *currency.Service {
	var source currency.RateSource = currency.StaticSource{}
	if !svc.Config.UsesStaticRates() {
		if prices, ok := svc.DefaultMarket.(marketpkg.PriceSource); ok {
			source = currency.NewMarketSource(prices)
		} else {
			logx.Slowf("svc: market provider %s cannot quote FX pairs, using static rates", svc.DefaultMarket.Name())
		}
	}
	opts := []currency.ServiceOption{currency.WithFetchTimeout(svc.Config.Currency.Timeout)}
	if svc.Redis != nil {
		opts = append(opts, currency.WithCache(currency.NewRedisCache(svc.Redis, cache.ExchangeRatesKey, cache.ExchangeRatesTTL(svc.TTL))))
	}
	return currency.NewService(source, opts...)
}

func (svc *ServiceContext) initAssistant() error {
	c := svc.Config

	var generator assistant.Generator
	if c.LLM.Value != nil {
		llmCfg := c.LLM.Value.Clone()
		// Test environment uses the low-cost model.
		if c.IsTestEnv() {
			llmCfg.UseTestModel()
		}
		client, err := llmpkg.NewClient(llmCfg)
		if err != nil {
			return fmt.Errorf("init llm client: %w", err)
		}
		svc.LLM = client
		generator = client
	}

	analyst, err := prompt.LoadOrInline(c.PromptPath(), "analyst", assistant.DefaultAnalystTemplate, prompt.Funcs())
	if err != nil {
		return fmt.Errorf("load analyst prompt: %w", err)
	}
	logx.Infof("svc: analyst prompt %s (digest %.12s)", analyst.Source(), analyst.Digest())

	a, err := assistant.New(generator, svc.Refresher, svc.Repos.Transcript,
		assistant.WithAnalystTemplate(analyst),
		assistant.WithMaxMessageLength(c.Chat.MaxMessageLength),
		assistant.WithTimeout(c.Chat.Timeout),
	)
	if err != nil {
		return err
	}
	svc.Assistant = a
	return nil
}
