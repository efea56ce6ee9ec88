package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

const defaultFetchTimeout = 8 * time.Second

// Result is a rate table plus whether it came from the hardcoded fallback.
type Result struct {
	Table    Table
	Degraded bool
}

// Service serves rate tables: cache first, then the live source, then the
// hardcoded fallback when the source fails.
type Service struct {
	source  RateSource
	cache   RateCache
	timeout time.Duration
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithCache enables a rate cache.
func WithCache(cache RateCache) ServiceOption {
	return func(s *Service) { s.cache = cache }
}

// WithFetchTimeout bounds the live source call.
func WithFetchTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService builds a Service. A nil source always serves the fallback.
func NewService(source RateSource, opts ...ServiceOption) *Service {
	s := &Service{source: source, timeout: defaultFetchTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rates returns the table for base. It only errors for unsupported bases;
// source failures degrade to the fallback table.
func (s *Service) Rates(ctx context.Context, base string) (Result, error) {
	base = NormalizeCode(base)
	if base == "" {
		base = BaseUSD
	}
	if _, ok := Lookup(base); !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, base)
	}
	logger := logx.WithContext(ctx)

	if s.cache != nil {
		table, ok, err := s.cache.Get(ctx, base)
		switch {
		case err != nil:
			logger.Errorf("currency: cache read for %s failed: %v", base, err)
		case ok:
			return Result{Table: table}, nil
		}
	}

	if s.source == nil {
		return Result{Table: FallbackTable(base), Degraded: true}, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	table, err := s.source.Rates(fetchCtx, base)
	if err != nil {
		logger.Slowf("currency: live rates for %s unavailable, serving fallback: %v", base, err)
		return Result{Table: FallbackTable(base), Degraded: true}, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, table); err != nil {
			logger.Errorf("currency: cache write for %s failed: %v", base, err)
		}
	}
	return Result{Table: table}, nil
}

// Warm refreshes the cache for every supported base and returns how many
// tables were fetched live.
func (s *Service) Warm(ctx context.Context) int {
	var live int
	for _, c := range supported {
		if s.source == nil {
			break
		}
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		table, err := s.source.Rates(fetchCtx, c.Code)
		cancel()
		if err != nil {
			logx.WithContext(ctx).Slowf("currency: warm %s failed: %v", c.Code, err)
			continue
		}
		live++
		if s.cache != nil {
			if err := s.cache.Set(ctx, table); err != nil {
				logx.WithContext(ctx).Errorf("currency: warm cache write %s failed: %v", c.Code, err)
			}
		}
	}
	return live
}
