package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables read by applyEnv.
const (
	EnvAddr        = "PHYSCALC_ADDR"
	EnvDatabase    = "PHYSCALC_DB"
	EnvSecret      = "SECRET_KEY"
	EnvRatesURL    = "PHYSCALC_RATES_URL"
	EnvLogLevel    = "PHYSCALC_LOG_LEVEL"
	EnvTelemetry   = "PHYSCALC_TELEMETRY"
	EnvServiceName = "OTEL_SERVICE_NAME"
)

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load builds the configuration: defaults, then the YAML file at path (when
// path is non-empty), then environment overrides. Validate is not called so
// that CLI flags can still be applied.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		data = interpolateEnv(data, getenv)

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// interpolateEnv replaces ${VAR} references with values from getenv.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envPattern.FindSubmatch(m)[1]
		return []byte(getenv(string(name)))
	})
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := getenv(EnvSecret); v != "" {
		c.Session.Secret = v
	}
	if v := getenv(EnvRatesURL); v != "" {
		c.Rates.BaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Server.LogLevel = v
	}
	if v := getenv(EnvServiceName); v != "" {
		c.Telemetry.ServiceName = v
	}
	if v := getenv(EnvTelemetry); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		c.Telemetry.Enabled = enabled
	}
	return nil
}
