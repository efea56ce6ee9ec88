package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"findash-api/internal/config"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "findash:fx:rates:IDR", ExchangeRatesKey("idr"))
	assert.Equal(t, "findash:quote:snapshot:AAPL", QuoteSnapshotKey("aapl"))
	assert.Equal(t, "findash:a:b", formatKey("a", " ", "b"))
}

func TestTTLSet(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 5, Medium: 0, Long: 600})
	assert.Equal(t, 5*time.Second, ttl.Short)
	assert.Equal(t, time.Minute, ttl.Medium)
	assert.Equal(t, 10*time.Minute, ExchangeRatesTTL(ttl))
	assert.Equal(t, time.Minute, QuoteSnapshotTTL(ttl))
	assert.Zero(t, ttl.Duration("unknown"))
	assert.Zero(t, NewTTLSet(config.CacheTTL{Short: -1}).Short)
}
