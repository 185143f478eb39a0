package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	configs "gradinghub/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)
}

func TestLoad(t *testing.T) {
	t.Run("defaults fill the gaps", func(t *testing.T) {
		writeConfig(t, `
db:
  host: localhost
  port: 5432
  user: grader
  dbname: gradinghub
  sslmode: disable
ingest:
  cache_root: /tmp/gradinghub-cache
`)

		cfg, err := configs.Load()
		require.NoError(t, err)
		require.Equal(t, "127.0.0.1:8085", cfg.HTTP.Address)
		require.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
		require.Equal(t, 4, cfg.Ingest.Workers)
		require.Equal(t, int64(1<<30), cfg.Ingest.MaxUnpackedBytes)
		require.Equal(t, int64(100), cfg.Ingest.MaxRatio)
		require.Equal(t, `[0-9]{8}`, cfg.Ingest.IDPattern)
		require.Equal(t, "student_id.txt", cfg.Ingest.SidecarFilename)
		require.False(t, cfg.Kafka.Enabled)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		writeConfig(t, `
db:
  host: localhost
  port: 5432
  user: grader
  dbname: gradinghub
  sslmode: disable
ingest:
  cache_root: /tmp/gradinghub-cache
  workers: 2
`)
		t.Setenv("INGEST_WORKERS", "8")
		t.Setenv("DB_HOST", "db.internal")

		cfg, err := configs.Load()
		require.NoError(t, err)
		require.Equal(t, 8, cfg.Ingest.Workers)
		require.Equal(t, "db.internal", cfg.DB.Host)
	})

	t.Run("incomplete database config is rejected", func(t *testing.T) {
		writeConfig(t, `
ingest:
  cache_root: /tmp/gradinghub-cache
`)

		_, err := configs.Load()
		require.Error(t, err)
	})

	t.Run("missing cache root is rejected", func(t *testing.T) {
		writeConfig(t, `
db:
  host: localhost
  user: grader
  dbname: gradinghub
`)

		_, err := configs.Load()
		require.Error(t, err)
	})

	t.Run("enabled events need brokers", func(t *testing.T) {
		writeConfig(t, `
db:
  host: localhost
  user: grader
  dbname: gradinghub
ingest:
  cache_root: /tmp/gradinghub-cache
kafka:
  enabled: true
`)

		_, err := configs.Load()
		require.Error(t, err)
	})

	t.Run("connection string", func(t *testing.T) {
		cfg := &configs.Config{}
		cfg.DB.Host = "localhost"
		cfg.DB.Port = 5432
		cfg.DB.User = "grader"
		cfg.DB.Password = "secret"
		cfg.DB.DBName = "gradinghub"
		cfg.DB.SSLMode = "disable"

		require.Equal(t,
			"host=localhost port=5432 user=grader password=secret dbname=gradinghub sslmode=disable",
			cfg.GetDBConnectionString(),
		)
	})
}
