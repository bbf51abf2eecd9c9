package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "linkyboard-api", cfg.AppName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.SummaryModel)
	assert.Contains(t, cfg.Observability.ExcludedPaths, "/health")
	assert.Contains(t, cfg.Observability.ExcludedPaths, "/metrics")
	assert.False(t, cfg.Database.Configured())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("CORRELATION_EXCLUDED_PATHS", "/health, /internal/ping")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Observability.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"/health", "/internal/ping"}, cfg.Observability.ExcludedPaths)
}

func TestValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "-1")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("production requires database", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("production with database", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/linkyboard")
		cfg, err := New()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.True(t, cfg.Database.Configured())
	})
}

func TestDatabaseLogStringStripsCredentials(t *testing.T) {
	d := DatabaseConfig{URL: "postgres://user:secret@db:5432/linkyboard"}
	logged := d.LogString()

	assert.Equal(t, "db:5432/linkyboard", logged)
	assert.NotContains(t, logged, "secret")
}

func TestAddr(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "127.0.0.1", Port: 8081}}
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
}
