// Command llm sends a single question through the analyst assistant using the
// same configuration as the API server. Useful for checking prompts and keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/config"
	"findash-api/internal/svc"
	"findash-api/pkg/assistant"
)

var (
	configFile = flag.String("f", "etc/findash.yaml", "the config file")
	symbol     = flag.String("symbol", "", "ticker used as context, e.g. AAPL")
	question   = flag.String("q", "", "question to ask")
	insight    = flag.Bool("insight", false, "print the technical insight for -symbol instead of asking")
)

func fatalf(format string, args ...any) {
	logx.Errorf(format, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	svcCtx := svc.NewServiceContext(*cfg)
	if svcCtx.LLM == nil {
		logx.Slowf("llm: no provider configured, answers will be fallbacks")
	} else {
		defer svcCtx.LLM.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *insight {
		if strings.TrimSpace(*symbol) == "" {
			fatalf("llm: -insight requires -symbol")
		}
		view, err := svcCtx.Refresher.Refresh(ctx, *symbol, "")
		if err != nil {
			fatalf("llm: refresh %s: %v", *symbol, err)
		}
		fmt.Println(svcCtx.Assistant.Insight(ctx, view.Quote.Symbol, view.History))
		return
	}

	turn, err := svcCtx.Assistant.Ask(ctx, assistant.Question{Message: *question, Symbol: *symbol})
	if err != nil {
		fatalf("llm: ask: %v", err)
	}
	fmt.Println(turn.Response)
}
