// Package app wires configuration, the document store and the services
// together. Every command builds exactly one App and tears it down on exit.
package app

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/config"
	mongorepo "github.com/ydelmas/fc26admin/internal/infrastructure/repository/mongo"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/usecase"
)

type App struct {
	Config config.Config
	Logger *logging.Logger
	Store  *mongorepo.Store

	Leagues      *usecase.LeagueService
	Teams        *usecase.TeamService
	Players      *usecase.PlayerService
	ScoutReports *usecase.ScoutReportService
	Dashboard    *usecase.DashboardService

	TeamImport   *usecase.TeamImportService
	PlayerImport *usecase.PlayerImportService
}

// New connects to the store and builds the full service graph. The given
// logger becomes the process default.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewJSON(cfg.LogLevel)
	}
	logging.SetDefault(logger)

	dialCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	store, err := mongorepo.Connect(dialCtx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, errors.Wrap(err, "connect store")
	}

	leagueRepo := mongorepo.NewLeagueRepository(store)
	teamRepo := mongorepo.NewTeamRepository(store)
	playerRepo := mongorepo.NewPlayerRepository(store)
	reportRepo := mongorepo.NewScoutReportRepository(store)

	return &App{
		Config: cfg,
		Logger: logger,
		Store:  store,

		Leagues:      usecase.NewLeagueService(leagueRepo, teamRepo, logger),
		Teams:        usecase.NewTeamService(leagueRepo, teamRepo, playerRepo),
		Players:      usecase.NewPlayerService(playerRepo, teamRepo, reportRepo, logger),
		ScoutReports: usecase.NewScoutReportService(reportRepo, playerRepo),
		Dashboard:    usecase.NewDashboardService(leagueRepo, teamRepo, playerRepo, reportRepo),

		TeamImport:   usecase.NewTeamImportService(leagueRepo, teamRepo, logger),
		PlayerImport: usecase.NewPlayerImportService(leagueRepo, teamRepo, playerRepo, logger),
	}, nil
}

func (a *App) Close(ctx context.Context) {
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			a.Logger.Warn("close store", "error", err)
		}
	}
	_ = a.Logger.Sync()
}
