package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so that the host environment
// cannot leak into a test. t.Setenv restores the originals.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "ENV", "LOG_LEVEL", "LOG_PRETTY", "STORAGE_DRIVER", "DATABASE_URL",
		"SEED_CATALOGS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TTL",
		"HTTP_ADDR", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Env)
	require.Equal(t, DriverMemory, cfg.Storage.Driver)
	require.True(t, cfg.Storage.SeedCatalogs)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, time.Minute, cfg.Redis.TTL)
	require.False(t, cfg.Redis.Enabled())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/films")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DriverPGX, cfg.Storage.Driver)
	require.Equal(t, "postgres://u:p@db/films", cfg.Storage.DatabaseURL)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, 30*time.Second, cfg.Redis.TTL)
	require.True(t, cfg.Log.Pretty)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "STORAGE_DRIVER=sqlite\nDATABASE_URL=file:films.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.Equal(t, "file:films.db", cfg.Storage.DatabaseURL)

	// A missing .env file is not an error.
	clearEnv(t)
	_, err = Load(filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
env: prod
log:
  level: debug
storage:
  driver: postgres
  database_url: postgres://localhost/films
http_addr: ":9090"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "warn", cfg.Log.Level, "environment overrides the file")
	require.Equal(t, DriverPostgres, cfg.Storage.Driver)
	require.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTPAddr:        ":8080",
			ShutdownTimeout: time.Second,
			Storage:         StorageConfig{Driver: DriverMemory},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"memory", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }, "unknown storage driver"},
		{"sql without dsn", func(c *Config) { c.Storage.Driver = DriverSQLite }, "DATABASE_URL is required"},
		{"empty addr", func(c *Config) { c.HTTPAddr = "" }, "HTTP_ADDR"},
		{"zero shutdown", func(c *Config) { c.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
		{"redis without ttl", func(c *Config) { c.Redis.Addr = "x:6379" }, "REDIS_TTL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
