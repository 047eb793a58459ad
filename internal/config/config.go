package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all startup configuration for the demo application
type Config struct {
	// Server configuration
	Port        int    `env:"PORT" envDefault:"5000"`
	BindAddress string `env:"BIND_ADDRESS" envDefault:"0.0.0.0"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Metrics configuration
	Metrics MetricsConfig

	// CORS configuration
	CORS CORSConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"300"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Runtime holds values that are resolved on every request
type Runtime struct {
	Environment string `env:"ENVIRONMENT"`
	Host        string `env:"HOST"`
}

// runtimeDefaults apply only to unset variables. A variable set to the empty
// string is reported as empty.
var runtimeDefaults = map[string]string{
	"ENVIRONMENT": "development",
	"HOST":        "localhost",
}

// reservedPaths are served by the API and cannot host the metrics endpoint
var reservedPaths = map[string]bool{
	"/":         true,
	"/health":   true,
	"/api/info": true,
}

// Load reads configuration from environment variables. The given dotenv
// files are loaded first; missing files are skipped.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadRuntime reads the current runtime information from the environment
func LoadRuntime() (*Runtime, error) {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			environ[key] = value
		}
	}
	for key, def := range runtimeDefaults {
		if _, ok := environ[key]; !ok {
			environ[key] = def
		}
	}

	rt := &Runtime{}
	if err := env.ParseWithOptions(rt, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse runtime info: %w", err)
	}
	return rt, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Port)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort == c.Port {
		return fmt.Errorf("gRPC port %d conflicts with HTTP port", c.GRPCPort)
	}

	// Validate metrics config
	if c.Metrics.Enabled {
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path)
		}
		if strings.ContainsAny(c.Metrics.Path, ":*") {
			return fmt.Errorf("metrics path must be a literal path: %q", c.Metrics.Path)
		}
		if reservedPaths[c.Metrics.Path] {
			return fmt.Errorf("metrics path %q is already served by the API", c.Metrics.Path)
		}
	}

	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("CORS max age must not be negative")
	}

	if c.Timeouts.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GRPCEnabled reports whether the gRPC health server should run
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort > 0
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.GRPCPort))
}
