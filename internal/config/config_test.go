package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STRICT_ADMISSION", "")
	t.Setenv("DEFAULT_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5001", cfg.ServerPort)
	assert.Equal(t, ":5001", cfg.Addr())
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
	assert.False(t, cfg.StrictAdmission)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 100, cfg.NotifyQueueSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("STRICT_ADMISSION", "true")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("GIN_MODE", "bogus")
	t.Setenv("RATE_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.True(t, cfg.StrictAdmission)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "release", cfg.GinMode)
	assert.InDelta(t, 2.5, cfg.RateRPS, 1e-9)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("RATE_BURST", "x")
	t.Setenv("EMAIL_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.False(t, cfg.SMTP.Enabled)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DBDriver:        "sqlite",
			SQLitePath:      "x.db",
			JWTSecret:       "s",
			JWTTTL:          time.Hour,
			ServerPort:      "8080",
			DefaultTimezone: "UTC",
			RateBurst:       1,
			NotifyQueueSize: 1,
			OTEL:            OTELConfig{SampleRatio: 1},
		}
	}

	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"secret", func(c *Config) { c.JWTSecret = " " }},
		{"port", func(c *Config) { c.ServerPort = "http" }},
		{"timezone", func(c *Config) { c.DefaultTimezone = "Mars/Olympus" }},
		{"burst", func(c *Config) { c.RateBurst = 0 }},
		{"queue", func(c *Config) { c.NotifyQueueSize = 0 }},
		{"ratio", func(c *Config) { c.OTEL.SampleRatio = 1.5 }},
		{"postgres url", func(c *Config) { c.DBDriver = "postgres"; c.DBUrl = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
