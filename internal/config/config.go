package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Application modes. Demo serves read-only pages and seeds sample data by default.
const (
	ModeFull = "full"
	ModeDemo = "demo"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"5000"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DSN    string `env:"DB_DSN" envDefault:"data/equipements.db"`
}

// AuthConfig holds the shared secret that gates mutating API calls.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// AppConfig selects the deployment profile.
type AppConfig struct {
	Mode string `env:"APP_MODE" envDefault:"full"`
	// SeedData is nil when unset so the mode can pick the default.
	SeedData *bool `env:"SEED_DATA"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Debug  bool   `env:"DEBUG" envDefault:"false"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	if err := env.Parse(&cfg.Database); err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if err := env.Parse(&cfg.Auth); err != nil {
		return nil, fmt.Errorf("parsing auth config: %w", err)
	}
	if err := env.Parse(&cfg.App); err != nil {
		return nil, fmt.Errorf("parsing app config: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}

	return cfg, nil
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Auth.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}

	switch c.App.Mode {
	case ModeFull, ModeDemo:
	default:
		return fmt.Errorf("APP_MODE must be %q or %q, got %q", ModeFull, ModeDemo, c.App.Mode)
	}

	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}

	return nil
}

// IsDemo returns true when running the read-only demo profile.
func (c *AppConfig) IsDemo() bool {
	return c.Mode == ModeDemo
}

// ShouldSeed returns true if sample equipment should be inserted into an empty table.
func (c *AppConfig) ShouldSeed() bool {
	if c.SeedData != nil {
		return *c.SeedData
	}
	return c.IsDemo()
}
