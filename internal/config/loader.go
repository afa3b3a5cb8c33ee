// Package config loads wordser configuration through viper and decodes it
// into typed structs with mapstructure.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WORDSER_SERVER_PORT.
const EnvPrefix = "WORDSER"

// ErrMissingAPIKey is returned when serving without a thesaurus credential.
var ErrMissingAPIKey = errors.New("thesaurus api key is required (set WORDSER_THESAURUS_API_KEY or THESAURUS_API_KEY)")

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers default values for every known key. Keys must be
// known to viper for environment overrides to reach AllSettings.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("thesaurus.base_url", "https://www.dictionaryapi.com/api/v3/references/thesaurus/json")
	v.SetDefault("thesaurus.timeout", "10s")

	v.SetDefault("inference.lexicon_path", "")
	v.SetDefault("inference.summary_sentences", 2)
	v.SetDefault("inference.max_keywords", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("health.enabled", true)
}

// BindEnv enables WORDSER_* environment overrides on v. The thesaurus key
// also accepts the unprefixed THESAURUS_API_KEY.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("thesaurus.api_key", EnvPrefix+"_THESAURUS_API_KEY", "THESAURUS_API_KEY"); err != nil {
		return fmt.Errorf("bind thesaurus api key: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var found []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return nil
	}

	if err := godotenv.Load(found...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load decodes the settings held by v into a Config and stores it as the
// current configuration. It does not require a thesaurus key; callers that
// need one check RequireThesaurus.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Thesaurus.APIKey = strings.TrimSpace(cfg.Thesaurus.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate checks value ranges. A missing API key is not an error here.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Thesaurus.Timeout <= 0 {
		errs = append(errs, errors.New("thesaurus.timeout must be positive"))
	}
	if c.Inference.SummarySentences <= 0 {
		errs = append(errs, errors.New("inference.summary_sentences must be positive"))
	}
	if c.Inference.MaxKeywords <= 0 {
		errs = append(errs, errors.New("inference.max_keywords must be positive"))
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		errs = append(errs, fmt.Errorf("metrics.port %d out of range", c.Metrics.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// RequireThesaurus fails when no thesaurus API key is configured.
func (c *Config) RequireThesaurus() error {
	if c == nil || c.Thesaurus.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}
