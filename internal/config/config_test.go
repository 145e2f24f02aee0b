package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "users.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadFileWithInterpolationAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "physcalc.yaml")
	yml := `
server:
  addr: ":9000"
database:
  path: "${DATA_DIR}/accounts.db"
session:
  ttl: 2h
  same_site: Strict
rates:
  timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path, envMap(map[string]string{
		"DATA_DIR":   "/var/lib/physcalc",
		EnvSecret:    "s3cret",
		EnvAddr:      ":9100",
		EnvTelemetry: "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, "/var/lib/physcalc/accounts.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3*time.Second, cfg.Rates.Timeout)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, http.SameSiteStrictMode, cfg.SameSiteMode())
}

func TestLoadRejectsBadTelemetryFlag(t *testing.T) {
	_, err := Load("", envMap(map[string]string{EnvTelemetry: "maybe"}))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil))
	assert.Error(t, err)
}

func TestValidateSecret(t *testing.T) {
	t.Run("required outside dev", func(t *testing.T) {
		cfg := Defaults()
		assert.Error(t, cfg.Validate())
	})

	t.Run("generated in dev", func(t *testing.T) {
		cfg := Defaults()
		cfg.Server.Dev = true
		require.NoError(t, cfg.Validate())
		assert.NotEmpty(t, cfg.Session.Secret)
		assert.False(t, cfg.SecureCookies())
	})

	t.Run("explicit secure flag wins", func(t *testing.T) {
		cfg := Defaults()
		cfg.Server.Dev = true
		secure := true
		cfg.Session.Secure = &secure
		require.NoError(t, cfg.Validate())
		assert.True(t, cfg.SecureCookies())
	})
}

func TestValidateRejectsBadSameSite(t *testing.T) {
	cfg := Defaults()
	cfg.Session.Secret = "x"
	cfg.Session.SameSite = "sometimes"
	assert.Error(t, cfg.Validate())
}

func TestValidateLogLevelAndSampleRatio(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Dev = true
	cfg.Server.LogLevel = "warn"
	require.NoError(t, cfg.Validate())

	cfg.Server.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg.Server.LogLevel = ""
	cfg.Telemetry.SampleRatio = 1.5
	assert.Error(t, cfg.Validate())
}

func TestLoadLogLevelFromEnv(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{EnvLogLevel: "debug"}))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
}
