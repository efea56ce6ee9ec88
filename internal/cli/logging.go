package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/config"
	"findash-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Listen: %s:%d", cfg.Host, cfg.Port),
		fmt.Sprintf("Postgres: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("TTL (short/medium/long): %ds / %ds / %ds", cfg.TTL.Short, cfg.TTL.Medium, cfg.TTL.Long),
		fmt.Sprintf("Refresh: default period %s, timeout %s", cfg.Refresh.DefaultPeriod, cfg.Refresh.Timeout),
		fmt.Sprintf("Chat: max %d chars, timeout %s, prompt %s", cfg.Chat.MaxMessageLength, cfg.Chat.Timeout, promptLine(cfg)),
		fmt.Sprintf("Currency source: %s", cfg.Currency.Source),
		fmt.Sprintf("Cron: rates %q, watchlist %q (%d symbols)", cfg.Cron.Rates(), cfg.Cron.Watch(), len(cfg.Cron.Watchlist)),
		sectionLine("LLM config", cfg.LLM),
		sectionLine("Market config", cfg.Market),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func promptLine(cfg *config.Config) string {
	if path := cfg.PromptPath(); path != "" {
		return path
	}
	return "built-in"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	if src := section.Describe(); src != "" {
		return fmt.Sprintf("%s: %s", name, src)
	}
	return fmt.Sprintf("%s: not configured", name)
}
