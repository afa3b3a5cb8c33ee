package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))
	return v
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("WORDSER_THESAURUS_API_KEY", "")
		t.Setenv("THESAURUS_API_KEY", "")

		cfg, err := Load(newViper(t))
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "https://www.dictionaryapi.com/api/v3/references/thesaurus/json", cfg.Thesaurus.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Thesaurus.Timeout)
		assert.Empty(t, cfg.Thesaurus.APIKey)

		assert.Equal(t, 2, cfg.Inference.SummarySentences)
		assert.Equal(t, 5, cfg.Inference.MaxKeywords)
		assert.Empty(t, cfg.Inference.LexiconPath)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "structured", cfg.Logging.Profile)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.True(t, cfg.Health.Enabled)

		assert.ErrorIs(t, cfg.RequireThesaurus(), ErrMissingAPIKey)
		assert.Same(t, cfg, GetConfig())
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("WORDSER_SERVER_PORT", "3000")
		t.Setenv("WORDSER_THESAURUS_TIMEOUT", "2500ms")
		t.Setenv("WORDSER_INFERENCE_MAX_KEYWORDS", "3")
		t.Setenv("WORDSER_METRICS_ENABLED", "false")
		t.Setenv("WORDSER_LOGGING_PROFILE", "simple")

		cfg, err := Load(newViper(t))
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, 2500*time.Millisecond, cfg.Thesaurus.Timeout)
		assert.Equal(t, 3, cfg.Inference.MaxKeywords)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, "simple", cfg.Logging.Profile)
	})

	t.Run("PrefixedAPIKey", func(t *testing.T) {
		t.Setenv("WORDSER_THESAURUS_API_KEY", "  prefixed-key  ")
		t.Setenv("THESAURUS_API_KEY", "bare-key")

		cfg, err := Load(newViper(t))
		require.NoError(t, err)
		assert.Equal(t, "prefixed-key", cfg.Thesaurus.APIKey)
		assert.NoError(t, cfg.RequireThesaurus())
	})

	t.Run("BareAPIKey", func(t *testing.T) {
		t.Setenv("WORDSER_THESAURUS_API_KEY", "")
		os.Unsetenv("WORDSER_THESAURUS_API_KEY")
		t.Setenv("THESAURUS_API_KEY", "bare-key")

		cfg, err := Load(newViper(t))
		require.NoError(t, err)
		assert.Equal(t, "bare-key", cfg.Thesaurus.APIKey)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wordser.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9999
inference:
  summary_sentences: 4
thesaurus:
  timeout: 1s
`), 0o600))

		v := newViper(t)
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, 4, cfg.Inference.SummarySentences)
		assert.Equal(t, time.Second, cfg.Thesaurus.Timeout)
		assert.Equal(t, 5, cfg.Inference.MaxKeywords)
	})

	t.Run("InvalidValues", func(t *testing.T) {
		v := newViper(t)
		v.Set("server.port", 70000)
		v.Set("inference.max_keywords", 0)

		_, err := Load(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.port 70000 out of range")
		assert.Contains(t, err.Error(), "inference.max_keywords must be positive")
	})

	t.Run("BadDuration", func(t *testing.T) {
		v := newViper(t)
		v.Set("thesaurus.timeout", "soon")

		_, err := Load(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal config")
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("MissingFileIgnored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("LoadsWithoutOverriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("WORDSER_DOTENV_PROBE=from-file\nWORDSER_DOTENV_KEEP=from-file\n"), 0o600))

		t.Setenv("WORDSER_DOTENV_KEEP", "from-env")
		t.Cleanup(func() { os.Unsetenv("WORDSER_DOTENV_PROBE") })

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("WORDSER_DOTENV_PROBE"))
		assert.Equal(t, "from-env", os.Getenv("WORDSER_DOTENV_KEEP"))
	})
}

func TestRequireThesaurusNilConfig(t *testing.T) {
	var cfg *Config
	assert.ErrorIs(t, cfg.RequireThesaurus(), ErrMissingAPIKey)
}
