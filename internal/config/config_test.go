package config

import (
	"testing"
	"time"

	"github.com/ydelmas/fc26admin/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MongoURI != "mongodb://127.0.0.1:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.DBName != "fc26_admin" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
	if cfg.DataDir != "./data/raw" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.MongoTimeout != 10*time.Second {
		t.Errorf("MongoTimeout = %v", cfg.MongoTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("DB_NAME", "fc26_test")
	t.Setenv("DATA_DIR", "/tmp/raw")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("MONGO_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.DBName != "fc26_test" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
	if cfg.DataDir != "/tmp/raw" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.MongoTimeout != 3*time.Second {
		t.Errorf("MongoTimeout = %v", cfg.MongoTimeout)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("MONGO_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid MONGO_TIMEOUT")
	}
}
