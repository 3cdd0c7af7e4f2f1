package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all CLI process configuration.
type Config struct {
	Store   StoreConfig
	Logging LogConfig
}

// StoreConfig holds store construction settings.
type StoreConfig struct {
	BasePath   string `envconfig:"SAFEJSON_BASE_PATH"`
	MaxSize    int64  `envconfig:"SAFEJSON_MAX_SIZE" default:"10000000"`
	Encoding   string `envconfig:"SAFEJSON_ENCODING"`
	SchemaPath string `envconfig:"SAFEJSON_SCHEMA"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"SAFEJSON_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"SAFEJSON_LOG_DEV" default:"false"`
	Silent      bool   `envconfig:"SAFEJSON_SILENT" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			MaxSize: 10000000,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
