package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	LogLevel   string
	ListenAddr string
	APIToken   string
	Backend    string
	DataDir    string
	SQLitePath string
	DBDSN      string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:        getEnv("APP_ENV", "development"),
			LogLevel:   getEnv("LOG_LEVEL", "info"),
			ListenAddr: getEnv("LISTEN_ADDR", ":8088"),
			APIToken:   getEnv("API_TOKEN", ""),
			Backend:    getEnv("STORAGE_BACKEND", "file"),
			DataDir:    getEnv("DATA_DIR", "data"),
			SQLitePath: getEnv("SQLITE_PATH", "data/goalsapp.db"),
			DBDSN:      getEnv("POSTGRES_DSN", ""),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "file":
		if c.DataDir == "" {
			return errors.New("file storage requires DATA_DIR to be set")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("sqlite storage requires SQLITE_PATH to be set")
		}
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
