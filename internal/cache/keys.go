package cache

import (
	"strings"
	"time"

	"findash-api/internal/config"
)

// Namespace is the Redis key prefix for the findash application.
const Namespace = "findash"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Currency Keys ----------------------------------------------------------

// ExchangeRatesKey holds the msgpack-encoded rate table for a base currency.
func ExchangeRatesKey(base string) string {
	return formatKey("fx", "rates", strings.ToUpper(base))
}

// --- Quote Keys -------------------------------------------------------------

// QuoteSnapshotKey caches the quote used as chat prompt context.
func QuoteSnapshotKey(symbol string) string {
	return formatKey("quote", "snapshot", strings.ToUpper(symbol))
}

// --- TTL Helpers ------------------------------------------------------------

// ExchangeRatesTTL returns the TTL for live rate tables.
func ExchangeRatesTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// QuoteSnapshotTTL returns the TTL for prompt-context quotes.
func QuoteSnapshotTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}
