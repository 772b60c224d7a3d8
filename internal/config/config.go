// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port            int           `env:"SERVER_PORT" envDefault:"12212"`
	FontsDir        string        `env:"FONTS_DIR"`
	RegistryPath    string        `env:"REGISTRY_PATH" envDefault:"printers.json"`
	LogoTimeout     time.Duration `env:"LOGO_TIMEOUT" envDefault:"5s"`
	ShareBaseURL    string        `env:"SHARE_BASE_URL"`
	MaxPrintRetries int           `env:"MAX_PRINT_RETRIES" envDefault:"3"`
	ScanInterval    time.Duration `env:"SCAN_INTERVAL" envDefault:"5s"`
	Headless        bool          `env:"HEADLESS" envDefault:"false"`
}

// Load reads .env if present, then parses the environment.
func Load() (*Config, error) {
	// Absence of a .env file is not an error.
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
