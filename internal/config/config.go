package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds process-level settings read from the environment. The
// database URL is optional; without it the CLI runs fully in memory.
type AppConfig struct {
	DatabaseURL string `env:"ROSTER_DATABASE_URL"`
	LogDir      string `env:"ROSTER_LOG_DIR" envDefault:""`
	LogLevel    string `env:"ROSTER_LOG_LEVEL" envDefault:"info"`
}

// LoadApp reads the application configuration from the environment.
func LoadApp() (*AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return &cfg, nil
}
