package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CLASSIFIER_BACKEND", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "1995-01-01", cfg.Server.DefaultDate)
	assert.Equal(t, BackendVader, cfg.Classifier.Backend)
	assert.Equal(t, 30*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 600, cfg.Gauge.Width)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
classifier:
  backend: huggingface
  token: hf_test
  timeout: 5s
gauge:
  width: 300
  height: 200
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "1995-01-01", cfg.Server.DefaultDate)
	assert.Equal(t, BackendHuggingFace, cfg.Classifier.Backend)
	assert.Equal(t, "hf_test", cfg.Classifier.Token)
	assert.Equal(t, 5*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, "distilbert-base-uncased-finetuned-sst-2-english", cfg.Classifier.Model)
	assert.Equal(t, 300, cfg.Gauge.Width)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CLASSIFIER_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Classifier.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Classifier.Backend = "bert" },
			wantErr: "unknown classifier backend: bert",
		},
		{
			name:    "huggingface without token",
			mutate:  func(c *Config) { c.Classifier.Backend = BackendHuggingFace },
			wantErr: "classifier token is required for the huggingface backend",
		},
		{
			name:    "bad default date",
			mutate:  func(c *Config) { c.Server.DefaultDate = "1995-02-30" },
			wantErr: "default_date must be YYYY-MM-DD: 1995-02-30",
		},
		{
			name:    "zero gauge size",
			mutate:  func(c *Config) { c.Gauge.Height = 0 },
			wantErr: "gauge width and height must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
