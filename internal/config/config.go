// Package config provides centralized configuration management for the
// flatfiles services. It loads settings from environment variables with
// sensible defaults and validates them on startup to fail fast on
// misconfiguration.
//
// Column catalogs are not part of this configuration; they live in their own
// file, loaded by the catalog package from Columns.CatalogPath.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/flatfiles/internal/column"
	"github.com/JonMunkholm/flatfiles/internal/numfmt"
)

// EnvPrefix is checked before the bare variable name, so FLATFILES_LOG_LEVEL
// wins over LOG_LEVEL.
const EnvPrefix = "FLATFILES_"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Columns ColumnsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 15s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxBodyBytes caps conversion request bodies (default: 1MB)
	MaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES" default:"1048576"`

	// RateLimit is requests per minute per client IP; 0 disables (default: 600)
	RateLimit int `env:"SERVER_RATE_LIMIT" default:"600"`

	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP and X-Forwarded-For headers are honored
	TrustedProxies []string `env:"SERVER_TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ColumnsConfig holds defaults applied to catalog columns that leave a
// setting unspecified.
type ColumnsConfig struct {
	// CatalogPath is the column catalog file (YAML, JSON or TOML)
	CatalogPath string `env:"COLUMNS_CATALOG" envAlt:"CATALOG_PATH" default:"columns.yaml"`

	// DefaultCulture is the culture for numeric columns (default: invariant)
	DefaultCulture string `env:"COLUMNS_DEFAULT_CULTURE"`

	// DefaultNullValues are comma-separated null tokens; the first is written
	// for null. Empty means only the empty string is null.
	DefaultNullValues []string `env:"COLUMNS_DEFAULT_NULL"`

	// DefaultTrim is whitespace, none, chars, leading or trailing (default: whitespace)
	DefaultTrim string `env:"COLUMNS_DEFAULT_TRIM" default:"whitespace"`

	// DefaultTrimChars is the cutset used with the chars, leading and trailing policies
	DefaultTrimChars string `env:"COLUMNS_DEFAULT_TRIM_CHARS"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "SERVER_MAX_BODY_BYTES must be positive")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "SERVER_RATE_LIMIT must be non-negative")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	// Column defaults validation
	if c.Columns.CatalogPath == "" {
		errs = append(errs, "COLUMNS_CATALOG must not be empty")
	}
	if _, err := numfmt.LookupCulture(c.Columns.DefaultCulture); err != nil {
		errs = append(errs, fmt.Sprintf("COLUMNS_DEFAULT_CULTURE (%q) is not a known culture", c.Columns.DefaultCulture))
	}
	if _, err := column.ParseTrimPolicy(c.Columns.DefaultTrim, c.Columns.DefaultTrimChars); err != nil {
		errs = append(errs, fmt.Sprintf("COLUMNS_DEFAULT_TRIM: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d, RequestTimeout: %s}, ",
		c.Server.Host, c.Server.Port, c.Server.RequestTimeout))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}, ",
		c.Logging.Level, c.Logging.Format))
	b.WriteString(fmt.Sprintf("Columns: {CatalogPath: %q, DefaultCulture: %q, DefaultNull: %q, DefaultTrim: %q}",
		c.Columns.CatalogPath, c.Columns.DefaultCulture, c.Columns.DefaultNullValues, c.Columns.DefaultTrim))
	b.WriteString("}")
	return b.String()
}
