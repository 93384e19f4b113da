package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/scoutreport"
	"github.com/ydelmas/fc26admin/internal/infrastructure/repository/memory"
	"github.com/ydelmas/fc26admin/internal/platform/id"
	"github.com/ydelmas/fc26admin/internal/usecase"
)

func newReportFixture(t *testing.T) (*usecase.ScoutReportService, player.Player) {
	t.Helper()
	gen := id.NewRandomGenerator()
	reportRepo := memory.NewScoutReportRepository(gen)
	playerRepo := memory.NewPlayerRepository(gen)

	p, err := playerRepo.Create(context.Background(), player.Player{
		LeagueID:   "lg1",
		TeamID:     "tm1",
		PlayerName: "Gabriel Martinelli",
		Slug:       "gabriel-martinelli",
	})
	require.NoError(t, err)

	return usecase.NewScoutReportService(reportRepo, playerRepo), p
}

func TestScoutReportCreate(t *testing.T) {
	t.Parallel()
	svc, p := newReportFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, scoutreport.Report{
		PlayerID:  p.ID,
		Rating:    8,
		Strengths: []string{" pace ", "", "dribbling"},
		Notes:     "  sharp in transition  ",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, []string{"pace", "dribbling"}, created.Strengths)
	require.Equal(t, "sharp in transition", created.Notes)
	require.False(t, created.CreatedAt.IsZero())
}

func TestScoutReportCreateRequiresPlayer(t *testing.T) {
	t.Parallel()
	svc, _ := newReportFixture(t)

	_, err := svc.Create(context.Background(), scoutreport.Report{PlayerID: "missing", Rating: 5})
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestScoutReportCreateRejectsRatingOutOfRange(t *testing.T) {
	t.Parallel()
	svc, p := newReportFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, scoutreport.Report{PlayerID: p.ID, Rating: 0})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = svc.Create(ctx, scoutreport.Report{PlayerID: p.ID, Rating: 11})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestScoutReportUpdateKeepsPlayerAndCreatedAt(t *testing.T) {
	t.Parallel()
	svc, p := newReportFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, scoutreport.Report{PlayerID: p.ID, Rating: 6})
	require.NoError(t, err)

	created.Rating = 9
	created.PlayerID = "tamper"
	require.NoError(t, svc.Update(ctx, created))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 9, got.Rating)
	require.Equal(t, p.ID, got.PlayerID)
	require.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestScoutReportDelete(t *testing.T) {
	t.Parallel()
	svc, p := newReportFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, scoutreport.Report{PlayerID: p.ID, Rating: 7})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}
