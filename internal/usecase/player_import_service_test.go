package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/infrastructure/repository/memory"
	"github.com/ydelmas/fc26admin/internal/platform/id"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/usecase"
)

const playersHeader = "player_name,team_name,positions,overall,age,pac,sho,pas,dri,def,phy,height_cm,preferred_foot,contract_start,contract_end,market_value\n"

type playerImportFixture struct {
	svc        *usecase.PlayerImportService
	leagueRepo *memory.LeagueRepository
	teamRepo   *memory.TeamRepository
	playerRepo *memory.PlayerRepository
	league     league.League
	team       team.Team
	dir        string
}

func newPlayerImportFixture(t *testing.T) playerImportFixture {
	t.Helper()
	gen := id.NewRandomGenerator()
	leagueRepo := memory.NewLeagueRepository(gen)
	teamRepo := memory.NewTeamRepository(gen)
	playerRepo := memory.NewPlayerRepository(gen)

	ctx := context.Background()
	lg, err := leagueRepo.Create(ctx, league.League{Code: "ANG1", Name: "Premier League", Level: 1})
	require.NoError(t, err)
	tm, err := teamRepo.Create(ctx, team.Team{LeagueID: lg.ID, Name: "Arsenal", Slug: "arsenal"})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ANG1"), 0o755))

	return playerImportFixture{
		svc:        usecase.NewPlayerImportService(leagueRepo, teamRepo, playerRepo, logging.NewNop()),
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		league:     lg,
		team:       tm,
		dir:        dir,
	}
}

func (fx playerImportFixture) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(fx.dir, "ANG1", name), []byte(content), 0o644))
}

func TestPlayerImportBasic(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	fx.write(t, "premier.csv", playersHeader+
		"Bukayo Saka,Arsenal,RW,87,24,85,82,83,88,40,68,178,Left,2023-07-01,2027-06-30,120000000\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Files)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, 0, summary.Skipped)

	players, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, players, 1)

	saka := players[0]
	require.Equal(t, "bukayo-saka", saka.Slug)
	require.Equal(t, fx.league.ID, saka.LeagueID)
	require.Equal(t, "Arsenal", saka.Team)
	require.Equal(t, 87, saka.Overall)
	require.Equal(t, int64(120000000), saka.MarketValue)
	require.NotNil(t, saka.ContractEnd)
}

func TestPlayerImportResolvesTeamBySlug(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	// "ARSENAL!!" slugs to "arsenal" even though the name differs.
	fx.write(t, "premier.csv", playersHeader+
		"Declan Rice,ARSENAL!!,CDM,88,26,70,75,84,80,85,86,185,Right,,,100000000\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	players, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Nil(t, players[0].ContractStart)
}

func TestPlayerImportMarketValueDigitStrip(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	// Dump files write money with dot-as-thousands separators; every digit
	// counts, so "999.999" is 999999, not a decimal to truncate.
	fx.write(t, "premier.csv", playersHeader+
		"William Saliba,Arsenal,CB,89,24,82,45,70,72,90,83,192,Right,,,999.999\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	players, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, int64(999999), players[0].MarketValue)
}

// failingUpsertRepo fails Upsert for one slug and delegates everything else.
type failingUpsertRepo struct {
	*memory.PlayerRepository
	failSlug string
}

func (r *failingUpsertRepo) Upsert(ctx context.Context, p player.Player) error {
	if p.Slug == r.failSlug {
		return errors.New("duplicate key")
	}
	return r.PlayerRepository.Upsert(ctx, p)
}

func TestPlayerImportCountsUpsertFailureAsSkip(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	svc := usecase.NewPlayerImportService(
		fx.leagueRepo,
		fx.teamRepo,
		&failingUpsertRepo{PlayerRepository: fx.playerRepo, failSlug: "bukayo-saka"},
		logging.NewNop(),
	)

	fx.write(t, "premier.csv", playersHeader+
		"Bukayo Saka,Arsenal,RW,87,24,85,82,83,88,40,68,178,Left,,,120000000\n"+
		"Declan Rice,Arsenal,CDM,88,26,70,75,84,80,85,86,185,Right,,,100000000\n")

	summary, err := svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, 1, summary.Skipped)

	// The failed row never aborts the file; the row after it lands.
	players, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "declan-rice", players[0].Slug)
}

func TestPlayerImportSkipsUnknownTeamRow(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	fx.write(t, "premier.csv", playersHeader+
		"Ghost Player,Nowhere FC,ST,70,20,70,70,70,70,70,70,180,Right,,,1000\n"+
		"Bukayo Saka,Arsenal,RW,87,24,85,82,83,88,40,68,178,Left,,,120000000\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, 1, summary.Skipped)
}

func TestPlayerImportSemicolonDialect(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	fx.write(t, "premier.csv",
		"player_name;team_name;overall;market_value\n"+
			"Martin Odegaard;Arsenal;89;110000000\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	players, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, 89, players[0].Overall)
	require.Equal(t, int64(110000000), players[0].MarketValue)
	// Columns absent from the header degrade to zero values.
	require.Equal(t, 0, players[0].Age)
}

func TestPlayerImportPreservesCreatedAtOnRerun(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	fx.write(t, "premier.csv", playersHeader+
		"Bukayo Saka,Arsenal,RW,87,24,85,82,83,88,40,68,178,Left,,,120000000\n")

	_, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)

	first, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	fx.write(t, "premier.csv", playersHeader+
		"Bukayo Saka,Arsenal,RW,89,25,86,83,84,89,41,69,178,Left,,,150000000\n")

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	second, err := fx.playerRepo.ListByTeam(ctx, fx.team.ID, 10)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, first[0].ID, second[0].ID)
	require.Equal(t, 89, second[0].Overall)
	require.Equal(t, first[0].CreatedAt, second[0].CreatedAt)
	require.NotEqual(t, first[0].UpdatedAt, second[0].UpdatedAt)
}

func TestPlayerImportSkipsUnknownLeagueDir(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(fx.dir, "XXX9"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(fx.dir, "XXX9", "ghosts.csv"),
		[]byte(playersHeader+"Ghost,Arsenal,ST,70,20,70,70,70,70,70,70,180,Right,,,1000\n"),
		0o644,
	))

	summary, err := fx.svc.Run(ctx, fx.dir)
	require.NoError(t, err)
	require.Equal(t, 0, summary.Files)
	require.Equal(t, 0, summary.Imported)
}

func TestPlayerImportSkipsFileMissingNames(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)

	fx.write(t, "premier.csv", "nickname,club\nSaka,Arsenal\n")

	summary, err := fx.svc.Run(context.Background(), fx.dir)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Files)
	require.Equal(t, 0, summary.Imported)
}

func TestPlayerImportMissingDirFails(t *testing.T) {
	t.Parallel()
	fx := newPlayerImportFixture(t)

	_, err := fx.svc.Run(context.Background(), filepath.Join(fx.dir, "does-not-exist"))
	require.ErrorIs(t, err, usecase.ErrNoData)
}
