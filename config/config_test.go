package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/posts.db", cfg.DBPath)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisHost)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
  "app": {"port": "9000", "allowed_origins": ["https://a.example", "https://b.example"]},
  "database": {"driver": "mysql", "name": "posts"},
  "log": {"level": "debug"}
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("APP_PORT", "9100")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.AppPort, "env wins over file")
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "posts", cfg.DBName)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
