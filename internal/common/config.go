package common

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path        string        `env:"JOBTRACK_DB" envDefault:"jobs.db"`
	BusyTimeout time.Duration `env:"JOBTRACK_DB_BUSY_TIMEOUT" envDefault:"5s"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level string `env:"JOBTRACK_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, WrapError(err, "parse env")
	}
	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "JOBTRACK_DB is required", ErrInvalidInput)
	}
	return nil
}
