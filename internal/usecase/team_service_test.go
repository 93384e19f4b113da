package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/infrastructure/repository/memory"
	"github.com/ydelmas/fc26admin/internal/platform/id"
	"github.com/ydelmas/fc26admin/internal/usecase"
)

type teamFixture struct {
	svc        *usecase.TeamService
	leagueRepo *memory.LeagueRepository
	teamRepo   *memory.TeamRepository
	playerRepo *memory.PlayerRepository
	league     league.League
}

func newTeamFixture(t *testing.T) teamFixture {
	t.Helper()
	gen := id.NewRandomGenerator()
	leagueRepo := memory.NewLeagueRepository(gen)
	teamRepo := memory.NewTeamRepository(gen)
	playerRepo := memory.NewPlayerRepository(gen)

	lg, err := leagueRepo.Create(context.Background(), league.League{Code: "ANG1", Name: "Premier League", Level: 1})
	require.NoError(t, err)

	return teamFixture{
		svc:        usecase.NewTeamService(leagueRepo, teamRepo, playerRepo),
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		league:     lg,
	}
}

func TestTeamCreateDerivesSlug(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, team.Team{LeagueID: fx.league.ID, Name: "Saint-Étienne"})
	require.NoError(t, err)
	require.Equal(t, "saint-etienne", created.Slug)
}

func TestTeamCreateRequiresLeague(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)

	_, err := fx.svc.Create(context.Background(), team.Team{LeagueID: "missing", Name: "Ghost FC"})
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestTeamCreateRejectsDuplicateInLeague(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, team.Team{LeagueID: fx.league.ID, Name: "Arsenal"})
	require.NoError(t, err)

	// Same slug via different punctuation.
	_, err = fx.svc.Create(ctx, team.Team{LeagueID: fx.league.ID, Name: "Arsenal!"})
	require.ErrorIs(t, err, usecase.ErrConflict)
}

func TestTeamDeleteBlockedByPlayers(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, team.Team{LeagueID: fx.league.ID, Name: "Chelsea"})
	require.NoError(t, err)

	_, err = fx.playerRepo.Create(ctx, player.Player{
		LeagueID:   fx.league.ID,
		TeamID:     created.ID,
		PlayerName: "Cole Palmer",
		Slug:       "cole-palmer",
	})
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, usecase.ErrHasDependents)
}

func TestTeamDeleteEmptyTeam(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, team.Team{LeagueID: fx.league.ID, Name: "Fulham"})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, created.ID))

	_, err = fx.svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestTeamListByLeagueRequiresLeague(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)

	_, err := fx.svc.ListByLeague(context.Background(), "missing")
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestTeamListSortsByRating(t *testing.T) {
	t.Parallel()
	fx := newTeamFixture(t)
	ctx := context.Background()

	for _, spec := range []struct {
		name   string
		rating int
	}{
		{"Arsenal", 84},
		{"Manchester City", 87},
		{"Everton", 76},
	} {
		_, err := fx.teamRepo.Create(ctx, team.Team{
			LeagueID: fx.league.ID,
			Name:     spec.name,
			Slug:     spec.name,
			Rating:   spec.rating,
		})
		require.NoError(t, err)
	}

	teams, err := fx.svc.List(ctx, usecase.TeamListParams{Sort: "rating_desc"})
	require.NoError(t, err)
	require.Len(t, teams, 3)
	require.Equal(t, "Manchester City", teams[0].Name)
	require.Equal(t, "Everton", teams[2].Name)
}
