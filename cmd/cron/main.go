package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/cli"
	"findash-api/internal/config"
	"findash-api/internal/jobs"
	"findash-api/internal/svc"
	"findash-api/pkg/market"
)

var (
	configFile = flag.String("f", "etc/findash.yaml", "the config file")
	once       = flag.Bool("once", false, "run every job once and exit")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	svcCtx := svc.NewServiceContext(*cfg)

	period, err := market.ParsePeriod(cfg.Refresh.DefaultPeriod)
	logx.Must(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := jobs.NewScheduler(ctx, svcCtx.Rates, svcCtx.Refresher, cfg.Cron.Watchlist, period)
	if *once {
		scheduler.RunRates()
		scheduler.RunWatchlist()
		return
	}

	logx.Must(scheduler.Register(cfg.Cron.Rates(), cfg.Cron.Watch()))
	// Warm once so the API starts with a populated cache.
	scheduler.RunRates()
	scheduler.Start()

	<-ctx.Done()
	logx.Info("cron: shutdown signal received")
	scheduler.Stop()
}
