package config

import (
	"time"
)

// Config represents the complete application configuration. Values come from
// flags, WORDSER_* environment variables (optionally seeded from a .env
// file), an optional YAML config file and the defaults in SetDefaults, in
// that order of precedence.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Thesaurus ThesaurusConfig `mapstructure:"thesaurus"`
	Inference InferenceConfig `mapstructure:"inference"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Health    HealthConfig    `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ThesaurusConfig configures the remote thesaurus provider.
type ThesaurusConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// APIKey is required to serve. It can also be supplied through the bare
	// THESAURUS_API_KEY variable.
	APIKey string `mapstructure:"api_key"`

	// Timeout bounds every outbound thesaurus call.
	Timeout time.Duration `mapstructure:"timeout"`
}

// InferenceConfig configures the in-process text model.
type InferenceConfig struct {
	// LexiconPath overrides the embedded lexicon when set.
	LexiconPath      string `mapstructure:"lexicon_path"`
	SummarySentences int    `mapstructure:"summary_sentences"`
	MaxKeywords      int    `mapstructure:"max_keywords"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the server log format: structured (JSON) or simple.
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated exporter port. /metrics on the main port
	// proxies to it.
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
