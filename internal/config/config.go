package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Data DataConfig `envPrefix:"GUILDQUEST_"`
	Log  LogConfig  `envPrefix:"GUILDQUEST_"`
}

// DataConfig holds persistence configuration
type DataConfig struct {
	// File is the JSON snapshot the application loads on start and
	// writes on save
	File string `env:"DATA_FILE" envDefault:"guildquest_data.json"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return nil, fmt.Errorf("GUILDQUEST_LOG_FORMAT must be console or json, got %q", cfg.Log.Format)
	}

	return cfg, nil
}
