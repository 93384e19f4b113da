// Command importplayers bulk-loads player CSVs from <DATA_DIR>/players, one
// subdirectory per league code. Teams must already exist; run importteams
// first.
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ydelmas/fc26admin/internal/app"
	"github.com/ydelmas/fc26admin/internal/config"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewConsole(logging.LevelInfo).Error("load config", "error", err)
		return err
	}

	logger := logging.NewConsole(cfg.LogLevel)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer a.Close(ctx)

	dir := filepath.Join(cfg.DataDir, "players")
	summary, err := a.PlayerImport.Run(ctx, dir)
	if err != nil {
		logger.Error("player import failed", "dir", dir, "error", err)
		return err
	}

	logger.Info("done",
		"files", summary.Files,
		"players", summary.Imported,
		"skipped", summary.Skipped,
	)
	return nil
}
