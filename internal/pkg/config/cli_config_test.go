//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCLIConfig_MongoURIFromEnv(t *testing.T) {
	t.Setenv(EnvMongoURI, "mongodb://env-host:27017")

	cfg, err := LoadCLIConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, MongoDbType, cfg.Database.Type)
	assert.Equal(t, "mongodb://env-host:27017", cfg.Database.DSN)
	assert.Equal(t, "mangoose", cfg.Database.DBName)
	assert.Equal(t, DefaultCollection, cfg.Database.Collection)
	assert.Equal(t, LogLevelInfo, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
}

func TestLoadCLIConfig_MissingDSN(t *testing.T) {
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvPrefix+"_DATABASE_DSN", "")

	_, err := LoadCLIConfig("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadCLIConfig_YAMLFile(t *testing.T) {
	t.Setenv(EnvMongoURI, "")

	path := writeFile(t, "cli.yaml", `
database:
  type: sqlite
  dsn: ":memory:"
logger:
  log_level: debug
  log_type: console
  no_color: true
`)

	cfg, err := LoadCLIConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.True(t, cfg.Logger.NoColor)
}

func TestLoadCLIConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cli.yaml", `
database:
  type: mongodb
  dsn: mongodb://file-host:27017
  db_name: from_file
`)
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvPrefix+"_DATABASE_DB_NAME", "from_env")

	cfg, err := LoadCLIConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://file-host:27017", cfg.Database.DSN)
	assert.Equal(t, "from_env", cfg.Database.DBName)
}

func TestLoadCLIConfig_UnreadableFile(t *testing.T) {
	_, err := LoadCLIConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadDotEnv(t *testing.T) {
	const (
		freshKey    = "MANGOOSE_TEST_DOTENV_FRESH"
		existingKey = "MANGOOSE_TEST_DOTENV_EXISTING"
	)
	t.Setenv(existingKey, "from-process")
	t.Cleanup(func() { _ = os.Unsetenv(freshKey) })

	path := writeFile(t, ".env", freshKey+"=from-file\n"+existingKey+"=from-file\n")

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-file", os.Getenv(freshKey))
	assert.Equal(t, "from-process", os.Getenv(existingKey))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}
