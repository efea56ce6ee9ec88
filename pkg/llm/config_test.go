package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAPIKey, envBaseURL, envDefaultModel, envTimeout, envMaxRetries} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "llm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: "https://llm.example/v1/"
api_key: "file-key"
default_model: "flash"
timeout: "20s"
max_retries: 1
models:
  flash:
    model_name: "gemini-2.0-flash"
    temperature: 0.3
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://llm.example/v1/", cfg.BaseURL)
	require.Equal(t, "file-key", cfg.APIKey)
	require.Equal(t, 20*time.Second, cfg.Timeout)
	require.Equal(t, 1, cfg.MaxRetries)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)

	model, ok := cfg.Model("flash")
	require.True(t, ok)
	require.Equal(t, "gemini-2.0-flash", model.ModelName)
	_, ok = cfg.Model("pro")
	require.False(t, ok)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("models: [unterminated"), 0o600))
	_, err = LoadConfig(bad)
	require.Error(t, err)
}

func TestLoadConfigDefaultsToGemini(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv(envAPIKey, "from-env")

	cfg, err := LoadConfigFromReader(strings.NewReader("log_level: error\n"))
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, cfg.BaseURL)
	require.Equal(t, defaultModel, cfg.DefaultModel)
	require.Equal(t, "from-env", cfg.APIKey)
	require.Equal(t, defaultTimeout, cfg.Timeout)
	require.Equal(t, defaultMaxRetries, cfg.MaxRetries)
}

func TestLoadConfigMissingKey(t *testing.T) {
	clearLLMEnv(t)

	_, err := LoadConfigFromReader(strings.NewReader(`api_key: "${GEMINI_API_KEY}"`))
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadConfigTimeout(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     string
		want    time.Duration
		wantErr bool
	}{
		{name: "unset", yaml: "", want: defaultTimeout},
		{name: "from file", yaml: `timeout: "45s"`, want: 45 * time.Second},
		{name: "env wins", yaml: `timeout: "45s"`, env: "5s", want: 5 * time.Second},
		{name: "malformed", yaml: `timeout: "soon"`, wantErr: true},
		{name: "negative", yaml: `timeout: "-1s"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			t.Setenv(envAPIKey, "key")
			t.Setenv(envTimeout, tt.env)

			cfg, err := LoadConfigFromReader(strings.NewReader(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.Timeout)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{BaseURL: "https://llm.example", APIKey: "key", DefaultModel: "flash", Timeout: time.Second}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing key", func(c *Config) { c.APIKey = " " }, "api_key is required"},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, "base_url is required"},
		{"missing model", func(c *Config) { c.DefaultModel = "" }, "default_model is required"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, "max_retries cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestConfigUseTestModel(t *testing.T) {
	cfg := &Config{DefaultModel: "gemini-2.5-pro", TestModel: "gemini-2.0-flash-lite"}
	cfg.UseTestModel()
	require.Equal(t, "gemini-2.0-flash-lite", cfg.DefaultModel)

	cfg = &Config{DefaultModel: "gemini-2.5-pro"}
	cfg.UseTestModel()
	require.Equal(t, "gemini-2.5-pro", cfg.DefaultModel)
}

func TestConfigClone(t *testing.T) {
	require.Nil(t, (*Config)(nil).Clone())

	cfg := &Config{DefaultModel: "pro", Models: map[string]ModelConfig{"pro": {ModelName: "gemini-2.5-pro"}}}
	cloned := cfg.Clone()
	cloned.DefaultModel = "flash"
	cloned.Models["pro"] = ModelConfig{ModelName: "other"}

	require.Equal(t, "pro", cfg.DefaultModel)
	require.Equal(t, "gemini-2.5-pro", cfg.Models["pro"].ModelName)
}
