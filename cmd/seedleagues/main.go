// Command seedleagues ensures the base league set exists. Leagues already
// present are left untouched, so manual edits survive re-seeding. SEED_FILE
// points at a JSON array overriding the built-in set.
package main

import (
	"context"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/ydelmas/fc26admin/internal/app"
	"github.com/ydelmas/fc26admin/internal/config"
	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
)

var defaultLeagues = []league.League{
	{Code: "ANG1", Name: "Premier League", Country: "England", Level: 1},
	{Code: "ESP1", Name: "La Liga", Country: "Spain", Level: 1},
	{Code: "FRA1", Name: "Ligue 1", Country: "France", Level: 1},
	{Code: "ITA1", Name: "Serie A", Country: "Italy", Level: 1},
	{Code: "ALL1", Name: "Bundesliga", Country: "Germany", Level: 1},
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

	leagues, err := loadSeedSet(cfg.SeedFile)
	if err != nil {
		logger.Error("load seed file", "file", cfg.SeedFile, "error", err)
		return err
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer a.Close(ctx)

	created, err := a.Leagues.Seed(ctx, leagues)
	if err != nil {
		logger.Error("seed failed", "error", err)
		return err
	}

	logger.Info("done", "leagues", len(leagues), "created", created)
	return nil
}

type seedEntry struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Level   int    `json:"level"`
}

func loadSeedSet(path string) ([]league.League, error) {
	if path == "" {
		return defaultLeagues, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}

	var entries []seedEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "decode seed file")
	}
	if len(entries) == 0 {
		return nil, errors.New("seed file holds no leagues")
	}

	out := make([]league.League, 0, len(entries))
	for _, e := range entries {
		level := e.Level
		if level == 0 {
			level = 1
		}
		out = append(out, league.League{
			Code:    e.Code,
			Name:    e.Name,
			Country: e.Country,
			Level:   level,
		})
	}
	return out, nil
}
