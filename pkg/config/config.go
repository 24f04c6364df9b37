package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/rowsd/rowsd/pkg/storage"
)

// Environment names recognized in configuration
const (
	EnvDebug      = "debug"
	EnvProduction = "production"
)

// Config holds all application configuration
type Config struct {
	// Environment selects debug or production behavior (log format,
	// verbosity defaults).
	Environment string `mapstructure:"environment"`

	// HTTP server configuration
	HTTP HTTPConfig `mapstructure:"http"`

	// Auth holds the shared bearer token
	Auth AuthConfig `mapstructure:"auth"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`

	// SQLite storage configuration
	SQLite storage.Config `mapstructure:"sqlite"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig holds the static bearer token for protected routes
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Addr returns the listen address in host:port form
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from the given file, applies ROWSD_*
// environment overrides, and validates the result. Configuration is
// read exactly once at startup.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("environment", EnvProduction)
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("sqlite.database", storage.DefaultConfig().Database)
	v.SetDefault("sqlite.busy_timeout", storage.DefaultConfig().BusyTimeout)

	v.SetEnvPrefix("ROWSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDebug, EnvProduction:
	default:
		return fmt.Errorf("invalid environment: %s (must be debug or production)", c.Environment)
	}

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}

	if c.Auth.Token == "" {
		return fmt.Errorf("auth token is required")
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.SQLite.Database == "" {
		return fmt.Errorf("sqlite database path is required")
	}

	return nil
}
