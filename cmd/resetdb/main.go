// Command resetdb drops every admin collection. Destructive; meant for dev
// environments before a fresh seed and import.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/ydelmas/fc26admin/internal/config"
	mongorepo "github.com/ydelmas/fc26admin/internal/infrastructure/repository/mongo"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
)

var collections = []string{
	mongorepo.CollLeagues,
	mongorepo.CollTeams,
	mongorepo.CollPlayers,
	mongorepo.CollScoutReports,
	mongorepo.CollTransfers,
}

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
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dialCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	store, err := mongorepo.Connect(dialCtx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Error("connect store", "error", err)
		return err
	}
	defer func() { _ = store.Close(ctx) }()

	for _, name := range collections {
		if err := store.DropCollection(ctx, name); err != nil {
			logger.Warn("drop failed", "collection", name, "error", err)
			continue
		}
		logger.Info("dropped", "collection", name)
	}

	logger.Info("done", "db", cfg.DBName)
	return nil
}
