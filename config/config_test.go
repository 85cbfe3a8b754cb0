package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/schemato/database"
	"github.com/ridoystarlord/schemato/errs"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDatabaseURL, EnvDriver, EnvSchemaFile, EnvStorageEndpoint, EnvStorageAccess, EnvStorageSecret} {
		t.Setenv(key, "")
	}
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFilesGiveDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "schemato.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "schemato.yaml", `
schema_file: db/schema.yaml
output:
  sql: s3://schemas/build.sql
types:
  lang: go
  package: entities
database:
  driver: pq
  url: postgres://localhost/app
  connect_timeout: 3s
storage:
  endpoint: localhost:9000
log:
  level: debug
`)

	cfg, err := Load(path, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, "db/schema.yaml", cfg.SchemaFile)
	assert.Equal(t, "s3://schemas/build.sql", cfg.Output.SQL)
	assert.Equal(t, "types.ts", cfg.Output.Types, "unset keys keep defaults")
	assert.Equal(t, "go", cfg.Types.Lang)
	assert.Equal(t, "entities", cfg.Types.Package)
	assert.Equal(t, database.DriverPq, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/app", cfg.Database.URL)
	assert.Equal(t, 3*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "schemato.yaml", "database:\n  url: postgres://file/app\n")
	t.Setenv(EnvDatabaseURL, "postgres://env/app")
	t.Setenv(EnvDriver, "pq")
	t.Setenv(EnvSchemaFile, "other.yaml")

	cfg, err := Load(path, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/app", cfg.Database.URL)
	assert.Equal(t, database.DriverPq, cfg.Database.Driver)
	assert.Equal(t, "other.yaml", cfg.SchemaFile)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvDatabaseURL)
	os.Unsetenv(EnvStorageAccess)
	dir := t.TempDir()
	envFile := write(t, dir, ".env", "DATABASE_URL=postgres://dotenv/app\nSCHEMATO_STORAGE_ACCESS_KEY=minio\n")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), envFile)
	require.NoError(t, err)

	assert.Equal(t, "postgres://dotenv/app", cfg.Database.URL)
	assert.Equal(t, "minio", cfg.Storage.AccessKey)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "schemato.yaml", "database: [")

	_, err := Load(path, filepath.Join(dir, ".env"))
	assert.True(t, errs.IsConfig(err))
}
