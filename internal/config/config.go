// Package config resolves runtime configuration for the product-catalog binary.
//
// Viper stays inside this package; the rest of the code receives an explicit
// Config. Sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "PRODUCT_CATALOG"

const (
	SourceSample   = "sample"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

const (
	KeyHost            = "host"
	KeyPort            = "port"
	KeyLogLevel        = "log-level"
	KeyCatalogSource   = "catalog-source"
	KeyCatalogFile     = "catalog-file"
	KeyDatabaseURL     = "database-url"
	KeyMetricsEnabled  = "metrics-enabled"
	KeyMetricsToken    = "metrics-token"
	KeyRateLimit       = "rate-limit"
	KeyAuthJWTSecret   = "auth-jwt-secret"
	KeyAuthKeyHash     = "auth-key-hash"
	KeyShutdownTimeout = "shutdown-timeout"
)

const minJWTSecretLen = 32

type Config struct {
	Host            string
	Port            int
	LogLevel        string
	Catalog         CatalogConfig
	Metrics         MetricsConfig
	Auth            AuthConfig
	RateLimit       int
	ShutdownTimeout time.Duration
}

type CatalogConfig struct {
	Source      string
	File        string
	DatabaseURL string
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

type AuthConfig struct {
	JWTSecret  string
	APIKeyHash string
}

// Init sets defaults, env binding and config file search paths.
func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.product-catalog")
	viper.AddConfigPath(".")

	viper.SetDefault(KeyHost, "0.0.0.0")
	viper.SetDefault(KeyPort, 8080)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyCatalogSource, SourceSample)
	viper.SetDefault(KeyCatalogFile, "")
	viper.SetDefault(KeyDatabaseURL, "")
	viper.SetDefault(KeyMetricsEnabled, true)
	viper.SetDefault(KeyMetricsToken, "")
	viper.SetDefault(KeyRateLimit, 0)
	viper.SetDefault(KeyAuthJWTSecret, "")
	viper.SetDefault(KeyAuthKeyHash, "")
	viper.SetDefault(KeyShutdownTimeout, 10*time.Second)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Load reads all sources and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Host:     viper.GetString(KeyHost),
		Port:     viper.GetInt(KeyPort),
		LogLevel: strings.ToLower(viper.GetString(KeyLogLevel)),
		Catalog: CatalogConfig{
			Source:      strings.ToLower(viper.GetString(KeyCatalogSource)),
			File:        viper.GetString(KeyCatalogFile),
			DatabaseURL: viper.GetString(KeyDatabaseURL),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool(KeyMetricsEnabled),
			Token:   viper.GetString(KeyMetricsToken),
		},
		Auth: AuthConfig{
			JWTSecret:  viper.GetString(KeyAuthJWTSecret),
			APIKeyHash: viper.GetString(KeyAuthKeyHash),
		},
		RateLimit:       viper.GetInt(KeyRateLimit),
		ShutdownTimeout: viper.GetDuration(KeyShutdownTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Catalog.Source {
	case SourceSample:
	case SourceFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("catalog-file is required when catalog-source is %s", SourceFile)
		}
	case SourcePostgres:
		if c.Catalog.DatabaseURL == "" {
			return fmt.Errorf("database-url is required when catalog-source is %s", SourcePostgres)
		}
	default:
		return fmt.Errorf("invalid catalog-source: %s (must be sample, file, or postgres)", c.Catalog.Source)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate-limit: %d", c.RateLimit)
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("auth-jwt-secret must be at least %d chars", minJWTSecretLen)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown-timeout: %s", c.ShutdownTimeout)
	}

	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Display renders the effective configuration with secrets masked.
func Display(cfg *Config) string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	return fmt.Sprintf(`Configuration:
  listen:             %s
  log-level:          %s
  catalog-source:     %s
  catalog-file:       %s
  database-url:       %s
  metrics-enabled:    %t
  rate-limit:         %d/min
  auth:               %s

Sources:
  Config file:        %s
  Environment:        %s_*
`,
		cfg.Addr(),
		cfg.LogLevel,
		cfg.Catalog.Source,
		orNone(cfg.Catalog.File),
		mask(cfg.Catalog.DatabaseURL),
		cfg.Metrics.Enabled,
		cfg.RateLimit,
		authMode(cfg.Auth),
		configFile,
		EnvPrefix,
	)
}

func authMode(a AuthConfig) string {
	switch {
	case a.JWTSecret != "" && a.APIKeyHash != "":
		return "bearer or api-key"
	case a.JWTSecret != "":
		return "bearer"
	case a.APIKeyHash != "":
		return "api-key"
	default:
		return "off"
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func mask(s string) string {
	if s == "" {
		return "(none)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
