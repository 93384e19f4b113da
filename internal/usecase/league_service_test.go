package usecase_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/infrastructure/repository/memory"
	"github.com/ydelmas/fc26admin/internal/platform/id"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/usecase"
)

func newLeagueFixture(t *testing.T) (*usecase.LeagueService, *memory.LeagueRepository, *memory.TeamRepository) {
	t.Helper()
	gen := id.NewRandomGenerator()
	leagueRepo := memory.NewLeagueRepository(gen)
	teamRepo := memory.NewTeamRepository(gen)
	svc := usecase.NewLeagueService(leagueRepo, teamRepo, logging.NewNop())
	return svc, leagueRepo, teamRepo
}

func TestLeagueCreateUppercasesCode(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, league.League{Code: "ang1", Name: "Premier League", Level: 1})
	require.NoError(t, err)
	require.Equal(t, "ANG1", created.Code)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
}

func TestLeagueCreateRejectsDuplicateCode(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, league.League{Code: "ANG1", Name: "Premier League", Level: 1})
	require.NoError(t, err)

	_, err = svc.Create(ctx, league.League{Code: "ANG1", Name: "Premier League Copy", Level: 1})
	require.ErrorIs(t, err, usecase.ErrConflict)
}

func TestLeagueCreateRejectsBadCode(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)

	_, err := svc.Create(context.Background(), league.League{Code: "a!", Name: "X League", Level: 1})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestLeagueDeleteBlockedByTeams(t *testing.T) {
	t.Parallel()
	svc, _, teamRepo := newLeagueFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, league.League{Code: "ESP1", Name: "La Liga", Level: 1})
	require.NoError(t, err)

	_, err = teamRepo.Create(ctx, team.Team{LeagueID: created.ID, Name: "Real Madrid", Slug: "real-madrid"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, usecase.ErrHasDependents)

	// Still present.
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
}

func TestLeagueDeleteEmptyLeague(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, league.League{Code: "FRA1", Name: "Ligue 1", Level: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestLeagueSeedIsIdempotent(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)
	ctx := context.Background()

	set := []league.League{
		{Code: "ANG1", Name: "Premier League", Country: "England", Level: 1},
		{Code: "ESP1", Name: "La Liga", Country: "Spain", Level: 1},
	}

	created, err := svc.Seed(ctx, set)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	// Second run changes nothing.
	created, err = svc.Seed(ctx, set)
	require.NoError(t, err)
	require.Equal(t, 0, created)

	leagues, err := svc.List(ctx, "", "code_asc")
	require.NoError(t, err)
	require.Len(t, leagues, 2)
}

func TestLeagueUpdatePreservesCreatedAt(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, league.League{Code: "ITA1", Name: "Serie A", Level: 1})
	require.NoError(t, err)

	created.Name = "Serie A TIM"
	created.CreatedAt = created.CreatedAt.AddDate(1, 0, 0)
	require.NoError(t, svc.Update(ctx, created))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Serie A TIM", got.Name)
	require.NotEqual(t, created.CreatedAt, got.CreatedAt)
}

func TestLeagueGetMissing(t *testing.T) {
	t.Parallel()
	svc, _, _ := newLeagueFixture(t)

	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, usecase.ErrNotFound)
	require.False(t, errors.Is(err, usecase.ErrInvalidInput))
}
