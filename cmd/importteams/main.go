// Command importteams bulk-loads club CSVs from <DATA_DIR>/teams into the
// document store. One file per league, named after the league code.
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

	dir := filepath.Join(cfg.DataDir, "teams")
	summary, err := a.TeamImport.Run(ctx, dir)
	if err != nil {
		logger.Error("team import failed", "dir", dir, "error", err)
		return err
	}

	logger.Info("done",
		"files", summary.FilesProcessed,
		"skipped_files", summary.FilesSkipped,
		"teams", summary.Imported,
	)
	return nil
}
