package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig(t *testing.T) {
	t.Run("env only with defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/jobly_test")
		t.Setenv("RABBITMQ_URL", "")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/jobly_test", cfg.DatabaseURL)
		assert.Equal(t, ":3001", cfg.HTTPAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Empty(t, cfg.RabbitMQURL)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := "http_addr: \":8080\"\ndatabase_url: postgres://file/jobly\nlog_level: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
		t.Setenv("DATABASE_URL", "postgres://env/jobly")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "postgres://env/jobly", cfg.DatabaseURL)
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/jobly")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
	})

	t.Run("database url required", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := LoadConfig("")
		require.EqualError(t, err, "DATABASE_URL is not set")
	})
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger("development", "loud")
	require.Error(t, err)
}
