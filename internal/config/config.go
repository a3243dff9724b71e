// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config on top of sane defaults.
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every variable read by LoadConfig.
	// Nesting uses ".", e.g. CONTACTS_SERVER.PORT -> server.port.
	EnvPrefix = "CONTACTS_"

	// LegacyDatabaseURLEnv is the connection string variable used by
	// earlier deployments of the service. It maps to database.url.
	LegacyDatabaseURLEnv = "DB_URL"

	// ServiceName tags logs and traces.
	ServiceName = "contacts"
)

// Database drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from. The
// `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig describes the document store the contacts live in.
//
// URL is the only setting the store strictly needs. Name falls back to
// the database named in the URL path, then to "contacts".
type DatabaseConfig struct {
	Driver         string        `koanf:"driver" validate:"required,oneof=mongo memory"`
	URL            string        `koanf:"url" validate:"required_if=Driver mongo"`
	Name           string        `koanf:"name"`
	Collection     string        `koanf:"collection" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`
}

// RedisConfig configures the optional contact cache. An empty Address
// disables it. Address is "host:port".
type RedisConfig struct {
	Address  string        `koanf:"address"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"min=0"`
	TTL      time.Duration `koanf:"ttl"`
}

// Enabled reports whether a cache address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Address != ""
}

// DefaultConfig returns the configuration used for every key the
// environment does not set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:         DriverMongo,
			Collection:     "contacts",
			ConnectTimeout: 10 * time.Second,
			QueryTimeout:   5 * time.Second,
		},
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it, and fills in observability defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// CONTACTS_DATABASE.URL -> database.url
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// DB_URL -> database.url, unless the prefixed variable already set it.
	if !k.Exists("database.url") {
		err = k.Load(env.Provider(LegacyDatabaseURLEnv, ".", func(s string) string {
			if s != LegacyDatabaseURLEnv {
				return ""
			}
			return "database.url"
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("could not load %s: %w", LegacyDatabaseURLEnv, err)
		}
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := mainConfig.finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// finalize validates c and injects the observability block.
func (c *Config) finalize() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces are tagged consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
