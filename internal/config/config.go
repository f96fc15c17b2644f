// Package config loads process configuration from an optional .env file, an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration.
type Config struct {
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	Log             LogConfig     `yaml:"log"`
	Storage         StorageConfig `yaml:"storage"`
	Redis           RedisConfig   `yaml:"redis"`
	HTTPAddr        string        `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY" env-default:"false"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Driver       string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	DatabaseURL  string `yaml:"database_url" env:"DATABASE_URL"`
	SeedCatalogs bool   `yaml:"seed_catalogs" env:"SEED_CATALOGS" env-default:"true"`
}

// RedisConfig configures the optional ranking cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"1m"`
}

// Load reads configuration. It first loads envFile into the environment when
// the file exists, then reads CONFIG_PATH (YAML, overridden by env) if set,
// otherwise the environment alone.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cleanenv cannot express in tags.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverPGX, DriverSQLite:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return errors.New("REDIS_TTL must be positive")
	}
	return nil
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}
