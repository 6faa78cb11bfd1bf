package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  port: "5433"
  user: waiter
  password: secret
  database: orders
server:
  port: 8080
app:
  timezone: Asia/Almaty
  log_level: DEBUG
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.DB.Host)
	assert.Equal(t, "5433", cfg.DB.Port)
	assert.Equal(t, "orders", cfg.DB.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Asia/Almaty", cfg.App.Timezone)
	assert.Equal(t, "DEBUG", cfg.App.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  user: waiter
  password: secret
  database: orders
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "Asia/Almaty", cfg.App.Timezone)
	assert.Equal(t, "backups", cfg.App.BackupDir)
	assert.Equal(t, "INFO", cfg.App.LogLevel)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  database: orders
`)

	t.Setenv("DB_HOST", "db.override")
	t.Setenv("APP_LOG_LEVEL", "ERROR")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "db.override", cfg.DB.Host)
	assert.Equal(t, "ERROR", cfg.App.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
