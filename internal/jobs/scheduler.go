// Package jobs schedules background cache warming: exchange-rate tables and
// the configured watchlist of symbols.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/refresh"
	"findash-api/pkg/market"
)

// RateWarmer refreshes cached exchange-rate tables.
type RateWarmer interface {
	Warm(ctx context.Context) int
}

// Refresher re-fetches one symbol and replaces its stored bars.
type Refresher interface {
	Refresh(ctx context.Context, symbol string, period market.Period) (*refresh.View, error)
}

type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	rates     RateWarmer
	refresher Refresher
	watchlist []string
	period    market.Period
}

func NewScheduler(ctx context.Context, rates RateWarmer, refresher Refresher, watchlist []string, period market.Period) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		ctx:       ctx,
		rates:     rates,
		refresher: refresher,
		watchlist: watchlist,
		period:    period,
	}
}

// Register adds the rates and watchlist jobs. An empty watchlist skips the
// second job.
func (s *Scheduler) Register(ratesSpec, watchSpec string) error {
	if _, err := s.cron.AddFunc(ratesSpec, s.RunRates); err != nil {
		return fmt.Errorf("register rates job %q: %w", ratesSpec, err)
	}
	if len(s.watchlist) == 0 {
		return nil
	}
	if _, err := s.cron.AddFunc(watchSpec, func() { s.RunWatchlist() }); err != nil {
		return fmt.Errorf("register watchlist job %q: %w", watchSpec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logx.Infof("jobs: scheduler started with %d entries", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logx.Info("jobs: scheduler stopped")
}

func (s *Scheduler) RunRates() {
	start := time.Now()
	live := s.rates.Warm(s.ctx)
	logx.WithContext(s.ctx).WithDuration(time.Since(start)).Infof("jobs: warmed %d exchange-rate tables", live)
}

// RunWatchlist refreshes every watchlist symbol and returns how many
// succeeded. Failures are logged and do not stop the loop.
func (s *Scheduler) RunWatchlist() int {
	var ok int
	for _, symbol := range s.watchlist {
		if s.ctx.Err() != nil {
			break
		}
		start := time.Now()
		view, err := s.refresher.Refresh(s.ctx, symbol, s.period)
		logger := logx.WithContext(s.ctx).WithDuration(time.Since(start))
		if err != nil {
			logger.Errorf("jobs: refresh %s failed: %v", symbol, err)
			continue
		}
		ok++
		logger.Infof("jobs: refreshed %s, %d bars, last %.2f", symbol, len(view.History), view.Quote.CurrentPrice)
	}
	return ok
}
