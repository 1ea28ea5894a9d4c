package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/nestoria/filter"
	"github.com/s0up4200/nestoria/nestoria"
)

// EnvPrefix prefixes environment overrides, e.g. NESTORIA_CACHE_MAX_AGE
const EnvPrefix = "NESTORIA"

// Load loads the configuration from file, environment and defaults.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nestoria"))
		}

		// Check /etc
		v.AddConfigPath("/etc/nestoria/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("country", string(nestoria.CountryUK))

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.max_age", int(nestoria.DefaultMaxAge.Seconds()))

	// HTTP defaults
	v.SetDefault("http.timeout", nestoria.DefaultTimeout)
	v.SetDefault("http.user_agent", nestoria.DefaultUserAgent)
	v.SetDefault("http.endpoint", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("metrics.enabled", false)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	country, err := nestoria.ParseCountry(cfg.Country)
	if err != nil {
		return fmt.Errorf("country: %w", err)
	}
	cfg.Country = string(country)

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative: %s", cfg.HTTP.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	// Presets must compile up front so a typo fails before any request
	manager := filter.NewManager()
	if err := manager.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("filter.presets: %w", err)
	}
	if cfg.Filter.DefaultExpression != "" {
		if _, err := manager.Compile(cfg.Filter.DefaultExpression); err != nil {
			return fmt.Errorf("filter.default: %w", err)
		}
	}

	return nil
}
