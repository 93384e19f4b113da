package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/infrastructure/repository/memory"
	"github.com/ydelmas/fc26admin/internal/platform/id"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/usecase"
)

const teamsHeader = "team_name,ovr,att,mid,def,budget,avg_age,youth_dev\n"

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

type teamImportFixture struct {
	svc        *usecase.TeamImportService
	leagueRepo *memory.LeagueRepository
	teamRepo   *memory.TeamRepository
	league     league.League
	dir        string
}

func newTeamImportFixture(t *testing.T) teamImportFixture {
	t.Helper()
	gen := id.NewRandomGenerator()
	leagueRepo := memory.NewLeagueRepository(gen)
	teamRepo := memory.NewTeamRepository(gen)

	lg, err := leagueRepo.Create(context.Background(), league.League{Code: "ANG1", Name: "Premier League", Level: 1})
	require.NoError(t, err)

	return teamImportFixture{
		svc:        usecase.NewTeamImportService(leagueRepo, teamRepo, logging.NewNop()),
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		league:     lg,
		dir:        t.TempDir(),
	}
}

func TestTeamImportBasic(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)
	ctx := context.Background()

	writeCSV(t, fx.dir, "ANG1.csv", teamsHeader+
		"Arsenal,84,85,83,82,650000000,25.4,80\n"+
		"Chelsea,82,83,81,80,420000000.9,24.1,85\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesProcessed)
	require.Equal(t, 0, summary.FilesSkipped)
	require.Equal(t, 2, summary.Imported)

	arsenal, ok, err := fx.teamRepo.FindByNameOrSlug(ctx, fx.league.ID, "Arsenal", "arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "arsenal", arsenal.Slug)
	require.Equal(t, int64(650000000), arsenal.Budget)
	require.Equal(t, 84, arsenal.Rating)
	require.InDelta(t, 25.4, arsenal.AvgAge, 0.001)

	// Fractional budgets round to the nearest unit.
	chelsea, ok, err := fx.teamRepo.FindByNameOrSlug(ctx, fx.league.ID, "Chelsea", "chelsea")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(420000001), chelsea.Budget)
}

func TestTeamImportIsIdempotent(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)
	ctx := context.Background()

	writeCSV(t, fx.dir, "ANG1.csv", teamsHeader+"Arsenal,84,85,83,82,650000000,25.4,80\n")

	_, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)

	first, ok, err := fx.teamRepo.FindByNameOrSlug(ctx, fx.league.ID, "Arsenal", "arsenal")
	require.NoError(t, err)
	require.True(t, ok)

	// Updated stats on the second run, same team document.
	writeCSV(t, fx.dir, "ANG1.csv", teamsHeader+"Arsenal,86,87,85,84,700000000,25.9,82\n")
	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	second, ok, err := fx.teamRepo.FindByNameOrSlug(ctx, fx.league.ID, "Arsenal", "arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 86, second.Rating)
	require.Equal(t, first.CreatedAt, second.CreatedAt)

	total, err := fx.teamRepo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestTeamImportCastsStatFields(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)
	ctx := context.Background()

	// Stat cells behave like plain numeric casts: a decimal keeps only its
	// integer part and a sign is honored, never digit-stripped.
	writeCSV(t, fx.dir, "ANG1.csv", teamsHeader+"Arsenal,8.5,-3,83,82,650000000,25.4,80\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	arsenal, ok, err := fx.teamRepo.FindByNameOrSlug(ctx, fx.league.ID, "Arsenal", "arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 8, arsenal.Rating)
	require.Equal(t, -3, arsenal.Att)
	require.Equal(t, 83, arsenal.Mid)
}

func TestTeamImportSkipsUnknownLeague(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)

	writeCSV(t, fx.dir, "XXX9.csv", teamsHeader+"Ghost FC,70,70,70,70,1000,22,50\n")
	writeCSV(t, fx.dir, "ANG1.csv", teamsHeader+"Arsenal,84,85,83,82,650000000,25.4,80\n")

	summary, err := fx.svc.Run(context.Background(), fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesProcessed)
	require.Equal(t, 1, summary.FilesSkipped)
	require.Equal(t, 1, summary.Imported)
}

func TestTeamImportSkipsFileMissingColumn(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)

	// No budget column: whole file refused, run keeps going.
	writeCSV(t, fx.dir, "ANG1.csv", "team_name,ovr,att,mid,def,avg_age,youth_dev\nArsenal,84,85,83,82,25.4,80\n")

	summary, err := fx.svc.Run(context.Background(), fx.dir)
	require.NoError(t, err)
	require.Equal(t, 0, summary.FilesProcessed)
	require.Equal(t, 1, summary.FilesSkipped)
	require.Equal(t, 0, summary.Imported)
}

func TestTeamImportSkipsBlankNames(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)

	writeCSV(t, fx.dir, "ANG1.csv", teamsHeader+
		",84,85,83,82,650000000,25.4,80\n"+
		"Arsenal,84,85,83,82,650000000,25.4,80\n")

	summary, err := fx.svc.Run(context.Background(), fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
}

func TestTeamImportEmptyDirFails(t *testing.T) {
	t.Parallel()
	fx := newTeamImportFixture(t)

	_, err := fx.svc.Run(context.Background(), fx.dir)
	require.ErrorIs(t, err, usecase.ErrNoData)
}
