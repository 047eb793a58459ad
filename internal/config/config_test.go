package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "BIND_ADDRESS", "GRPC_PORT", "LOG_LEVEL",
	"METRICS_ENABLED", "METRICS_PATH",
	"CORS_ALLOWED_ORIGINS", "CORS_MAX_AGE",
	"HTTP_READ_HEADER_TIMEOUT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
	"ENVIRONMENT", "HOST",
}

// clearEnv blanks every variable the package reads. Empty values fall back
// to their defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

// unsetEnv removes the given variables for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 0, cfg.GRPCPort)
	assert.False(t, cfg.GRPCEnabled())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 300, cfg.CORS.MaxAge)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
	assert.Equal(t, "0.0.0.0:5000", cfg.GetHTTPAddr())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("GRPC_PORT", "9091")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.GRPCEnabled())
	assert.Equal(t, "0.0.0.0:9091", cfg.GetGRPCAddr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.ShutdownTimeout)
}

func TestLoadRejectsNonNumericPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadDotenvFile(t *testing.T) {
	clearEnv(t)
	unsetEnv(t, "PORT", "LOG_LEVEL")
	t.Setenv("METRICS_PATH", "/prom")

	file := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7000\nLOG_LEVEL=warn\nMETRICS_PATH=/ignored\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	// values already in the environment win over the file
	assert.Equal(t, "/prom", cfg.Metrics.Path)
}

func TestLoadRejectsPatternMetricsPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("METRICS_PATH", "/*any")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "literal path")
}

func TestLoadMissingDotenvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:     5000,
			LogLevel: "info",
			Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
			CORS:     CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 300},
			Timeouts: TimeoutConfig{ShutdownTimeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "invalid HTTP port"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "invalid HTTP port"},
		{"negative grpc port", func(c *Config) { c.GRPCPort = -1 }, "invalid gRPC port"},
		{"grpc port clash", func(c *Config) { c.GRPCPort = 5000 }, "conflicts"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "must start with"},
		{"metrics on health", func(c *Config) { c.Metrics.Path = "/health" }, "already served"},
		{"metrics path parameter", func(c *Config) { c.Metrics.Path = "/:x" }, "literal path"},
		{"metrics path catch-all", func(c *Config) { c.Metrics.Path = "/*any" }, "literal path"},
		{"metrics disabled ignores path", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Path = "/health"
		}, ""},
		{"negative cors max age", func(c *Config) { c.CORS.MaxAge = -1 }, "CORS max age"},
		{"zero shutdown timeout", func(c *Config) { c.Timeouts.ShutdownTimeout = 0 }, "shutdown timeout"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRuntime(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		unsetEnv(t, "ENVIRONMENT", "HOST")

		rt, err := LoadRuntime()
		require.NoError(t, err)
		assert.Equal(t, "development", rt.Environment)
		assert.Equal(t, "localhost", rt.Host)
	})

	t.Run("empty values are kept", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("HOST", "")

		rt, err := LoadRuntime()
		require.NoError(t, err)
		assert.Equal(t, "", rt.Environment)
		assert.Equal(t, "", rt.Host)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("HOST", "example.com")

		rt, err := LoadRuntime()
		require.NoError(t, err)
		assert.Equal(t, "production", rt.Environment)
		assert.Equal(t, "example.com", rt.Host)
	})
}
