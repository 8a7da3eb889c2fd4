// Package config loads the server configuration from FORMVIEW_* environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name.
const Prefix = "FORMVIEW_"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ServerHost string `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SERVER_PORT" envDefault:"8080"`

	// LabelsFile points at a YAML file overriding the form labels.
	LabelsFile string `env:"LABELS_FILE"`

	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`
	// TrustedOrigins are host:port values allowed to post cross-origin.
	TrustedOrigins []string `env:"TRUSTED_ORIGINS" envSeparator:","`
	// SecretKey authenticates CSRF state. A random key is generated per
	// process when empty.
	SecretKey string `env:"SECRET_KEY"`

	// ThemeBrand sets the --brand CSS variable on rendered pages.
	ThemeBrand string `env:"THEME_BRAND"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("%sSERVER_PORT must be between 1 and 65535, got %d", Prefix, cfg.ServerPort)
	}
	if cfg.SessionLifetime <= 0 {
		return nil, fmt.Errorf("%sSESSION_LIFETIME must be positive, got %s", Prefix, cfg.SessionLifetime)
	}

	origins := cfg.TrustedOrigins[:0]
	for _, origin := range cfg.TrustedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.TrustedOrigins = origins

	return cfg, nil
}
