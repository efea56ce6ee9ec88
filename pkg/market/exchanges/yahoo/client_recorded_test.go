package yahoo

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replays a real chart call. Skipped when the cassette is absent unless
// RECORD_CASSETTES=1, in which case it records against the live API.
func TestProvider_Fetch_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "yahoo_chart_aapl")
	if _, err := os.Stat(cassette + ".yaml"); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s.yaml", cassette)
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(cassette), 0o755))
	}

	r, err := recorder.New(cassette)
	require.NoError(t, err)
	defer func() { _ = r.Stop() }()

	provider := NewProvider("yahoo", WithClientOptions(WithHTTPClient(&http.Client{Transport: r})))
	series, err := provider.Fetch(context.Background(), "AAPL", "1mo")
	require.NoError(t, err)
	assert.Empty(t, series.Error)
	assert.Greater(t, series.Quote.CurrentPrice, 0.0)
	assert.NotEmpty(t, series.Bars)
}
