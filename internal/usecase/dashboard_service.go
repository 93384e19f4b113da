package usecase

import (
	"context"
	"fmt"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/scoutreport"
	"github.com/ydelmas/fc26admin/internal/domain/team"
)

// Counts is the entity tally shown on the admin home page. ReportedPlayers
// counts distinct players carrying at least one scout report.
type Counts struct {
	Leagues         int64
	Teams           int64
	Players         int64
	ReportedPlayers int64
}

type DashboardService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	reportRepo scoutreport.Repository
}

func NewDashboardService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	reportRepo scoutreport.Repository,
) *DashboardService {
	return &DashboardService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		reportRepo: reportRepo,
	}
}

func (s *DashboardService) Counts(ctx context.Context) (Counts, error) {
	leagues, err := s.leagueRepo.Count(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("count leagues: %w", err)
	}
	teams, err := s.teamRepo.Count(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("count teams: %w", err)
	}
	players, err := s.playerRepo.Count(ctx, player.Filter{})
	if err != nil {
		return Counts{}, fmt.Errorf("count players: %w", err)
	}
	reported, err := s.reportRepo.CountReportedPlayers(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("count reported players: %w", err)
	}

	return Counts{
		Leagues:         leagues,
		Teams:           teams,
		Players:         players,
		ReportedPlayers: reported,
	}, nil
}
