// Package refresh runs the stock data refresh protocol: fetch from the
// provider, validate, replace the cached series, and compute indicators.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"

	"findash-api/internal/repo"
	"findash-api/pkg/market"
	"findash-api/pkg/market/indicators"
)

const defaultTimeout = 15 * time.Second

// State is a step of the refresh protocol.
type State string

const (
	StateFetching   State = "fetching"
	StateValidating State = "validating"
	StateReplacing  State = "replacing"
	StateComputing  State = "computing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Error reports the state a refresh failed in.
type Error struct {
	State  State
	Symbol string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("refresh %s failed while %s: %v", e.Symbol, e.State, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports whether the failure is the user-correctable missing-symbol case.
func (e *Error) NotFound() bool { return errors.Is(e.Err, market.ErrSymbolNotFound) }

// View is the assembled result of a successful refresh.
type View struct {
	Quote         market.Quote
	MarketCapText string
	VolumeText    string
	History       []market.Bar
	Indicators    indicators.Set
}

// Service coordinates the provider, the bar repository, and the indicator engine.
type Service struct {
	provider market.Provider
	bars     repo.BarRepository
	timeout  time.Duration
	locks    syncx.LockedCalls
	observe  func(symbol string, state State)
	quotes   QuoteCache
}

// QuoteCache keeps recent snapshots so chat requests do not refetch quotes.
type QuoteCache interface {
	Get(ctx context.Context, symbol string) (*market.Quote, bool, error)
	Set(ctx context.Context, q *market.Quote) error
}

// Option customises a Service.
type Option func(*Service)

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithObserver registers a callback invoked on every state transition.
func WithObserver(fn func(symbol string, state State)) Option {
	return func(s *Service) { s.observe = fn }
}

// WithQuoteCache caches Snapshot results.
func WithQuoteCache(c QuoteCache) Option {
	return func(s *Service) { s.quotes = c }
}

func NewService(provider market.Provider, bars repo.BarRepository, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		bars:     bars,
		timeout:  defaultTimeout,
		locks:    syncx.NewLockedCalls(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh runs the protocol for symbol. Refreshes of the same symbol run one
// at a time; different symbols proceed in parallel. The repository is only
// written after the fetched series validates.
func (s *Service) Refresh(ctx context.Context, symbol string, period market.Period) (*View, error) {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, &Error{State: StateValidating, Symbol: symbol, Err: market.ErrSymbolNotFound}
	}
	if period == "" {
		period = market.DefaultPeriod
	}

	v, err := s.locks.Do(symbol, func() (any, error) {
		return s.run(ctx, symbol, period)
	})
	if err != nil {
		return nil, err
	}
	return v.(*View), nil
}

func (s *Service) run(ctx context.Context, symbol string, period market.Period) (*View, error) {
	logger := logx.WithContext(ctx).WithFields(
		logx.Field("symbol", symbol),
		logx.Field("period", period.String()),
		logx.Field("provider", s.provider.Name()),
	)
	start := time.Now()
	transition := func(state State) {
		logger.Debugf("refresh state=%s", state)
		if s.observe != nil {
			s.observe(symbol, state)
		}
	}
	fail := func(state State, err error) (*View, error) {
		transition(StateFailed)
		if errors.Is(err, market.ErrSymbolNotFound) {
			logger.Infof("refresh: %s not found while %s", symbol, state)
		} else {
			logger.Errorf("refresh: failed while %s: %v", state, err)
		}
		return nil, &Error{State: state, Symbol: symbol, Err: err}
	}

	transition(StateFetching)
	series, err := s.fetch(ctx, symbol, period)
	if err != nil {
		return fail(StateFetching, err)
	}

	transition(StateValidating)
	if err := market.Validate(series); err != nil {
		return fail(StateValidating, err)
	}
	market.Normalize(symbol, period, series)

	transition(StateReplacing)
	if err := s.bars.ReplaceAll(ctx, symbol, series.Bars); err != nil {
		return fail(StateReplacing, err)
	}

	transition(StateComputing)
	stored, err := s.bars.GetAll(ctx, symbol)
	if err != nil {
		return fail(StateComputing, err)
	}
	set := indicators.Compute(stored)

	transition(StateDone)
	logger.Infof("refresh: %d bars in %s", len(stored), time.Since(start).Round(time.Millisecond))

	quote := series.Quote
	quote.ComputeChange()
	return &View{
		Quote:         quote,
		MarketCapText: market.FormatMarketCap(quote.MarketCap),
		VolumeText:    market.FormatVolume(quote.Volume),
		History:       stored,
		Indicators:    set,
	}, nil
}

func (s *Service) fetch(ctx context.Context, symbol string, period market.Period) (*market.Series, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	series, err := s.provider.Fetch(fetchCtx, symbol, period)
	if err == nil && fetchCtx.Err() != nil {
		err = fetchCtx.Err()
	}
	if err != nil {
		return nil, market.NewProviderError(s.provider.Name(), symbol, err)
	}
	return series, nil
}

// Snapshot fetches the current quote for symbol without touching the repository.
func (s *Service) Snapshot(ctx context.Context, symbol string) (*market.Quote, error) {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, market.ErrSymbolNotFound
	}
	if s.quotes != nil {
		if q, ok, err := s.quotes.Get(ctx, symbol); err != nil {
			logx.WithContext(ctx).Slowf("refresh: quote cache read for %s: %v", symbol, err)
		} else if ok {
			return q, nil
		}
	}
	series, err := s.fetch(ctx, symbol, market.Period("1d"))
	if err != nil {
		return nil, err
	}
	if err := market.Validate(series); err != nil {
		return nil, err
	}
	quote := series.Quote
	quote.Symbol = symbol
	if quote.Name == "" {
		quote.Name = symbol
	}
	quote.ComputeChange()
	if s.quotes != nil {
		if err := s.quotes.Set(ctx, &quote); err != nil {
			logx.WithContext(ctx).Slowf("refresh: quote cache write for %s: %v", symbol, err)
		}
	}
	return &quote, nil
}
