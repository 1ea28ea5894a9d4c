package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Country string        `mapstructure:"country"`
	Cache   CacheConfig   `mapstructure:"cache"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CacheConfig controls response caching
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MaxAge is in seconds; zero or less disables caching
	MaxAge int `mapstructure:"max_age"`
}

// MaxAgeDuration returns MaxAge as a time.Duration
func (c CacheConfig) MaxAgeDuration() time.Duration {
	return time.Duration(c.MaxAge) * time.Second
}

// Active reports whether responses will actually be cached
func (c CacheConfig) Active() bool {
	return c.Enabled && c.MaxAge > 0
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	// Endpoint overrides the country host, e.g. for a proxy
	Endpoint string `mapstructure:"endpoint"`
}

// FilterConfig contains listing filter presets
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// MetricsConfig controls the optional Prometheus dump after each command
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
