package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the complete service configuration. It is built once at startup
// and handed to every component that needs it.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Rates     RatesConfig     `yaml:"rates"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"` // empty means info, or debug in dev mode
	Dev             bool          `yaml:"-"`         // set via CLI flag, not config
}

// DatabaseConfig points at the sqlite file holding the accounts table.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     *bool         `yaml:"secure"`    // nil means secure unless in dev mode
	SameSite   string        `yaml:"same_site"` // "Strict", "Lax" or "None"
}

// RatesConfig configures the exchange-rate lookup used by currency conversion.
type RatesConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig toggles OTLP export of traces, metrics and logs.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"` // fraction of new traces kept
}

// Defaults returns a configuration with every field set to its default.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "users.db",
		},
		Session: SessionConfig{
			CookieName: "physcalc_session",
			TTL:        24 * time.Hour,
			SameSite:   "Lax",
		},
		Rates: RatesConfig{
			BaseURL: "https://api.exchangerate-api.com/v4/latest",
			Timeout: 10 * time.Second,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "physcalc",
			SampleRatio: 1,
		},
	}
}

// Validate checks the configuration after CLI overrides have been applied.
// In dev mode a missing session secret is replaced with a random one.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	switch c.Session.SameSite {
	case "Strict", "Lax", "None":
	default:
		return fmt.Errorf("session.same_site must be Strict, Lax or None, got %q", c.Session.SameSite)
	}
	if c.Rates.BaseURL == "" {
		return errors.New("rates.base_url is required")
	}
	if c.Server.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.Server.LogLevel); err != nil {
			return fmt.Errorf("server.log_level: %w", err)
		}
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio must be within [0, 1], got %g", c.Telemetry.SampleRatio)
	}

	if c.Session.Secret == "" {
		if !c.Server.Dev {
			return errors.New("session.secret is required (set SECRET_KEY)")
		}
		secret, err := generateSecret()
		if err != nil {
			return fmt.Errorf("generating dev session secret: %w", err)
		}
		c.Session.Secret = secret
	}

	return nil
}

// SecureCookies reports whether session cookies carry the Secure flag.
func (c *Config) SecureCookies() bool {
	if c.Session.Secure != nil {
		return *c.Session.Secure
	}
	return !c.Server.Dev
}

// SameSiteMode converts the configured SameSite string.
func (c *Config) SameSiteMode() http.SameSite {
	switch c.Session.SameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
