package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpstreamModel(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		cfg   ModelConfig
		want  string
	}{
		{"alias only", "gemini-2.0-flash", ModelConfig{}, "gemini-2.0-flash"},
		{"model name wins", "flash", ModelConfig{ModelName: "gemini-2.5-flash"}, "gemini-2.5-flash"},
		{"provider prefix", "google/gemini-2.5-pro", ModelConfig{}, "gemini-2.5-pro"},
		{"models prefix", "pro", ModelConfig{ModelName: " models/gemini-2.5-pro "}, "gemini-2.5-pro"},
		{"empty", "", ModelConfig{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UpstreamModel(tt.alias, tt.cfg))
		})
	}
}
