package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONTACTS_DATABASE.URL", "mongodb://localhost:27017/contacts")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://localhost:27017/contacts", cfg.Database.URL)
	assert.Equal(t, "contacts", cfg.Database.Collection)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CONTACTS_PRIMARY.ENV", "production")
	t.Setenv("CONTACTS_SERVER.PORT", "8080")
	t.Setenv("CONTACTS_SERVER.CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CONTACTS_DATABASE.URL", "mongodb://db:27017")
	t.Setenv("CONTACTS_DATABASE.QUERY_TIMEOUT", "250ms")
	t.Setenv("CONTACTS_OBSERVABILITY.LOGGING.LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.QueryTimeout)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_LegacyDatabaseURL(t *testing.T) {
	t.Setenv("DB_URL", "mongodb://legacy:27017/app")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://legacy:27017/app", cfg.Database.URL)
}

func TestLoadConfig_PrefixedURLWins(t *testing.T) {
	t.Setenv("DB_URL", "mongodb://legacy:27017/app")
	t.Setenv("CONTACTS_DATABASE.URL", "mongodb://primary:27017/app")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary:27017/app", cfg.Database.URL)
}

func TestLoadConfig_MongoRequiresURL(t *testing.T) {
	t.Setenv("CONTACTS_DATABASE.URL", "")
	t.Setenv("DB_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MemoryDriverNeedsNoURL(t *testing.T) {
	t.Setenv("CONTACTS_DATABASE.DRIVER", DriverMemory)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("CONTACTS_DATABASE.DRIVER", "postgres")
	t.Setenv("CONTACTS_DATABASE.URL", "postgres://localhost")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ObservabilityConfig)
		wantErr bool
	}{
		{"defaults", func(*ObservabilityConfig) {}, false},
		{"empty level", func(c *ObservabilityConfig) { c.Logging.Level = "" }, false},
		{"bad level", func(c *ObservabilityConfig) { c.Logging.Level = "trace" }, true},
		{"bad format", func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, true},
		{"console format", func(c *ObservabilityConfig) { c.Logging.Format = "console" }, false},
		{"no service name", func(c *ObservabilityConfig) { c.ServiceName = "" }, true},
		{"zero health timeout", func(c *ObservabilityConfig) { c.HealthChecks.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "error"
	assert.Equal(t, "error", c.GetLogLevel())
}

func TestLoadConfig_Redis(t *testing.T) {
	t.Setenv("CONTACTS_DATABASE.DRIVER", DriverMemory)
	t.Setenv("CONTACTS_REDIS.ADDRESS", "localhost:6379")
	t.Setenv("CONTACTS_REDIS.DB", "2")
	t.Setenv("CONTACTS_REDIS.TTL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}
