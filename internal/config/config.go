// Package config loads the service configuration from environment variables.
// Every setting has a default except where a manifest source demands one, and
// the result is validated on startup so misconfiguration fails fast.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Manifest sources.
const (
	ManifestBuiltin  = "builtin"
	ManifestFile     = "file"
	ManifestPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Upload   UploadConfig
	Manifest ManifestConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds each request through chi's Timeout middleware.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SessionConfig controls the per-browser inventory sessions.
type SessionConfig struct {
	// TTL is how long an idle session (and its uploaded dataset) is kept.
	TTL time.Duration `env:"SESSION_TTL" default:"2h"`

	// SweepInterval is how often expired sessions are removed.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"10m"`

	CookieName   string `env:"SESSION_COOKIE_NAME" default:"acparts_session"`
	CookieSecure bool   `env:"SESSION_COOKIE_SECURE" default:"false"`
}

// UploadConfig holds inventory file ingestion settings.
type UploadConfig struct {
	// MaxFileSize is the maximum accepted file size in bytes (default: 20MB).
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`

	// MaxRows caps the number of data rows accepted from one file.
	MaxRows int `env:"UPLOAD_MAX_ROWS" default:"200000"`

	// HeaderSearchRows is how many leading rows are scanned for the A/C and Desc headers.
	HeaderSearchRows int `env:"UPLOAD_HEADER_SEARCH_ROWS" default:"20"`

	// MaxConcurrent is the maximum number of files parsed in parallel.
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long an upload waits for a parse slot.
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"15s"`
}

// ManifestConfig selects where the required-parts manifest comes from.
type ManifestConfig struct {
	// Source is one of: builtin, file, postgres.
	Source string `env:"MANIFEST_SOURCE" default:"builtin"`

	// Path is the manifest file (yaml, json or toml) when Source is "file".
	Path string `env:"MANIFEST_PATH"`

	// DatabaseURL is the PostgreSQL connection string when Source is "postgres".
	DatabaseURL string `env:"MANIFEST_DATABASE_URL" envAlt:"DATABASE_URL"`

	// Table holds the manifest rows (position, description, required).
	Table string `env:"MANIFEST_TABLE" default:"required_parts"`

	// ConnectTimeout bounds the retried startup connection to the database.
	ConnectTimeout time.Duration `env:"MANIFEST_CONNECT_TIMEOUT" default:"30s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are honoured.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects /api routes with the X-API-Key header.
	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is text or json.
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, "SESSION_TTL must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		errs = append(errs, "SESSION_SWEEP_INTERVAL must be positive")
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		errs = append(errs, "SESSION_COOKIE_NAME must not be empty")
	}

	if c.Upload.MaxFileSize <= 0 {
		errs = append(errs, "UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.Upload.MaxRows <= 0 {
		errs = append(errs, "UPLOAD_MAX_ROWS must be positive")
	}
	if c.Upload.HeaderSearchRows <= 0 {
		errs = append(errs, "UPLOAD_HEADER_SEARCH_ROWS must be positive")
	}
	if c.Upload.MaxConcurrent <= 0 {
		errs = append(errs, "UPLOAD_MAX_CONCURRENT must be positive")
	}
	if c.Upload.MaxWaitTime <= 0 {
		errs = append(errs, "UPLOAD_MAX_WAIT_TIME must be positive")
	}

	switch strings.ToLower(c.Manifest.Source) {
	case ManifestBuiltin:
	case ManifestFile:
		if c.Manifest.Path == "" {
			errs = append(errs, "MANIFEST_PATH is required when MANIFEST_SOURCE=file")
		}
	case ManifestPostgres:
		if c.Manifest.DatabaseURL == "" {
			errs = append(errs, "MANIFEST_DATABASE_URL is required when MANIFEST_SOURCE=postgres")
		}
		if c.Manifest.Table == "" {
			errs = append(errs, "MANIFEST_TABLE must not be empty")
		}
		if c.Manifest.ConnectTimeout <= 0 {
			errs = append(errs, "MANIFEST_CONNECT_TIMEOUT must be positive")
		}
	default:
		errs = append(errs, fmt.Sprintf("MANIFEST_SOURCE (%q) must be one of: builtin, file, postgres", c.Manifest.Source))
	}

	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a representation safe for logs; the database URL is masked.
func (c *Config) String() string {
	dbURL := ""
	if c.Manifest.DatabaseURL != "" {
		dbURL = "[MASKED]"
	}
	return fmt.Sprintf("Config{Server: {Addr: %q}, Session: {TTL: %s}, Upload: {MaxFileSize: %d, MaxRows: %d, MaxConcurrent: %d}, "+
		"Manifest: {Source: %q, Path: %q, DatabaseURL: %q, Table: %q}, Rate: {Enabled: %v, RequestsPerMinute: %d}, "+
		"Logging: {Level: %q, Format: %q}}",
		c.Server.Addr(), c.Session.TTL, c.Upload.MaxFileSize, c.Upload.MaxRows, c.Upload.MaxConcurrent,
		c.Manifest.Source, c.Manifest.Path, dbURL, c.Manifest.Table,
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Logging.Level, c.Logging.Format)
}
