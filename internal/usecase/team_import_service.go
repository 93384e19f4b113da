package usecase

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/platform/coerce"
	"github.com/ydelmas/fc26admin/internal/platform/csvkit"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/platform/slug"
)

// ErrNoData marks the one fatal import failure: the expected data directory
// (or any CSV inside it) is missing. Everything else degrades to file- or
// row-level skips.
var ErrNoData = errors.New("import data not found")

// teamColumns is the required header set of a teams CSV. A file missing any
// of them is skipped whole.
var teamColumns = []string{"team_name", "ovr", "att", "mid", "def", "budget", "avg_age", "youth_dev"}

// TeamImportSummary aggregates one team import run.
type TeamImportSummary struct {
	FilesProcessed int
	FilesSkipped   int
	Imported       int
}

// TeamImportService bulk-loads club CSVs: one file per league, named after
// the league code (ANG1.csv). Upserts are keyed by (league, slug) so re-runs
// converge instead of duplicating.
type TeamImportService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewTeamImportService(leagueRepo league.Repository, teamRepo team.Repository, logger *logging.Logger) *TeamImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamImportService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

// Run imports every CSV under dir, strictly one file at a time, rows in file
// order. Returns ErrNoData when dir is missing or holds no CSV files.
func (s *TeamImportService) Run(ctx context.Context, dir string) (TeamImportSummary, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return TeamImportSummary{}, fmt.Errorf("glob teams dir: %w", err)
	}
	if len(files) == 0 {
		return TeamImportSummary{}, errors.Wrapf(ErrNoData, "no csv files in %s", dir)
	}
	sort.Strings(files)

	if err := s.teamRepo.EnsureIndexes(ctx); err != nil {
		return TeamImportSummary{}, fmt.Errorf("ensure team indexes: %w", err)
	}

	// One stamp for the whole run; only applied on first creation.
	now := time.Now().UTC().Truncate(time.Millisecond)

	var summary TeamImportSummary
	for _, file := range files {
		count, ok := s.importFile(ctx, file, now)
		if !ok {
			summary.FilesSkipped++
			continue
		}
		summary.FilesProcessed++
		summary.Imported += count
	}

	s.logger.Info("team import finished",
		"files", summary.FilesProcessed,
		"skipped_files", summary.FilesSkipped,
		"teams", summary.Imported,
	)

	return summary, nil
}

// importFile loads one league file. Returns ok=false when the whole file was
// skipped; the run always continues with the next file.
func (s *TeamImportService) importFile(ctx context.Context, path string, now time.Time) (int, bool) {
	name := filepath.Base(path)
	code := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))

	lg, ok, err := s.leagueRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error("league lookup failed", "code", code, "file", name, "error", err)
		return 0, false
	}
	if !ok {
		s.logger.Warn("no league for file, skipping", "code", code, "file", name)
		return 0, false
	}

	f, err := csvkit.Open(path)
	if err != nil {
		if errors.Is(err, csvkit.ErrEmptyFile) {
			s.logger.Warn("empty file, skipping", "file", name)
		} else {
			s.logger.Error("cannot open file, skipping", "file", name, "error", err)
		}
		return 0, false
	}
	defer func() { _ = f.Close() }()

	header := f.Header()
	idx := csvkit.HeaderIndex(header, teamColumns)
	for _, col := range teamColumns {
		if idx[col] == csvkit.Missing {
			s.logger.Error("missing column, skipping file", "column", col, "file", name)
			return 0, false
		}
	}

	count := 0
	for {
		row, err := f.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn("unreadable row, skipping rest of file", "file", name, "error", err)
			break
		}
		if len(row) < len(header) {
			continue
		}

		teamName := strings.TrimSpace(csvkit.Cell(row, idx["team_name"]))
		if teamName == "" {
			continue
		}

		t := team.Team{
			LeagueID:  lg.ID,
			Name:      teamName,
			Slug:      slug.Make(teamName, slug.FallbackTeam),
			Rating:    coerce.CastInt(csvkit.Cell(row, idx["ovr"])),
			Att:       coerce.CastInt(csvkit.Cell(row, idx["att"])),
			Mid:       coerce.CastInt(csvkit.Cell(row, idx["mid"])),
			Def:       coerce.CastInt(csvkit.Cell(row, idx["def"])),
			Budget:    int64(math.Round(coerce.Float(csvkit.Cell(row, idx["budget"])))),
			AvgAge:    coerce.Float(csvkit.Cell(row, idx["avg_age"])),
			YouthDev:  coerce.CastInt(csvkit.Cell(row, idx["youth_dev"])),
			CreatedAt: now,
		}

		if err := s.teamRepo.Upsert(ctx, t); err != nil {
			s.logger.Warn("team upsert failed, row skipped", "team", teamName, "file", name, "error", err)
			continue
		}
		count++
	}

	s.logger.Info("teams imported", "code", code, "file", name, "count", count)
	return count, true
}
