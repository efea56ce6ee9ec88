package market_test

import (
	"os"
	"path/filepath"
	"testing"

	market "findash-api/pkg/market"
	_ "findash-api/pkg/market/exchanges/yahoo"
)

// Ensures env placeholders are expanded and durations parsed.
func TestMarketConfig_EnvExpansionAndDurations(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YAHOO_BASE_VAR", "https://yahoo.test")
	t.Setenv("TOUT", "9s")
	t.Setenv("HTTP_TOUT", "13s")

	yaml := []byte(`
default: yf
providers:
  yf:
    type: yahoo
    base_url: ${YAHOO_BASE_VAR}
    timeout: ${TOUT}
    http_timeout: ${HTTP_TOUT}
`)
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := market.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	p := cfg.Providers["yf"]
	if p == nil {
		t.Fatalf("provider yf missing")
	}
	if p.BaseURL != "https://yahoo.test" {
		t.Fatalf("BaseURL not expanded, got %q", p.BaseURL)
	}
	if p.Timeout.String() != "9s" || p.HTTPTimeout.String() != "13s" {
		t.Fatalf("durations not parsed, timeout=%s http_timeout=%s", p.Timeout, p.HTTPTimeout)
	}
}
