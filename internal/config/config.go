package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// MinSecretLength is the shortest accepted JWT_SECRET.
const MinSecretLength = 16

var defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config holds the service configuration read from the environment.
type Config struct {
	// HTTP Server
	Port            string        `env:"PORT,default=4000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=15s"`
	// Comma separated list of origins allowed to call the API from a browser.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	// Database
	DBPath string `env:"DB_PATH,default=./data/expenses.db"`

	// Tokens
	JWTSecret string `env:"JWT_SECRET"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=console"`

	// Credential registered at startup when both are set
	AdminUser     string `env:"ADMIN_USER"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads an optional .env file and decodes the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	if len(c.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Sprintf("JWT_SECRET must be at least %d bytes", MinSecretLength))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be 'json' or 'console'", c.LogFormat))
	}

	if (c.AdminUser == "") != (c.AdminPassword == "") {
		errs = append(errs, "ADMIN_USER and ADMIN_PASSWORD must be set together")
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Origins returns the CORS allow-list.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}
