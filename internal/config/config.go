package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ydelmas/fc26admin/internal/platform/logging"
)

// Config stores runtime configuration for the admin jobs.
type Config struct {
	MongoURI     string
	DBName       string
	MongoTimeout time.Duration

	// DataDir holds the import layout: <DataDir>/teams/*.csv and
	// <DataDir>/players/<LEAGUE_CODE>/*.csv.
	DataDir string

	// SeedFile optionally overrides the built-in league seed set.
	SeedFile string

	LogLevel logging.Level
}

func Load() (Config, error) {
	mongoTimeout, err := time.ParseDuration(getEnv("MONGO_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MONGO_TIMEOUT: %w", err)
	}
	if mongoTimeout <= 0 {
		return Config{}, fmt.Errorf("MONGO_TIMEOUT must be > 0")
	}

	cfg := Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:       getEnv("DB_NAME", "fc26_admin"),
		MongoTimeout: mongoTimeout,
		DataDir:      getEnv("DATA_DIR", "./data/raw"),
		SeedFile:     strings.TrimSpace(getEnv("SEED_FILE", "")),
		LogLevel:     parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
