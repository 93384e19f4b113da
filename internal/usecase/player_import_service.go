package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/platform/coerce"
	"github.com/ydelmas/fc26admin/internal/platform/csvkit"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/platform/slug"
)

// playerColumns is the full logical column set of a players CSV. Only
// player_name and team_name are hard requirements; the rest degrade to
// zero/empty when absent.
var playerColumns = []string{
	"player_name", "team_name", "positions", "overall", "age",
	"pac", "sho", "pas", "dri", "def", "phy",
	"height_cm", "preferred_foot", "contract_start", "contract_end", "market_value",
}

// PlayerImportSummary aggregates one player import run.
type PlayerImportSummary struct {
	Files    int
	Imported int
	Skipped  int
}

// PlayerImportService bulk-loads player CSVs laid out as one subdirectory
// per league code, each holding any number of files. Teams are resolved by
// exact name or derived slug inside the league; rows without a match are
// skipped and counted, never auto-created.
type PlayerImportService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewPlayerImportService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *PlayerImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerImportService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// Run imports every league subdirectory under dir, strictly sequentially.
// Returns ErrNoData when dir does not exist.
func (s *PlayerImportService) Run(ctx context.Context, dir string) (PlayerImportSummary, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return PlayerImportSummary{}, errors.Wrapf(ErrNoData, "players directory %s", dir)
	}

	if err := s.playerRepo.EnsureIndexes(ctx); err != nil {
		// The upsert key still dedupes without the index; keep going.
		s.logger.Warn("ensure player indexes failed", "error", err)
	}

	leagueByCode, err := s.loadLeagueCodes(ctx)
	if err != nil {
		return PlayerImportSummary{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return PlayerImportSummary{}, fmt.Errorf("read players dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var summary PlayerImportSummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		code := entry.Name()
		leagueID, ok := leagueByCode[code]
		if !ok {
			s.logger.Warn("no league for directory, skipping", "code", code)
			continue
		}

		files, err := filepath.Glob(filepath.Join(dir, code, "*.csv"))
		if err != nil {
			s.logger.Error("glob league directory failed", "code", code, "error", err)
			continue
		}
		sort.Strings(files)
		s.logger.Info("importing league", "code", code, "files", len(files))

		for _, file := range files {
			summary.Files++
			imported, skipped := s.importFile(ctx, file, leagueID)
			summary.Imported += imported
			summary.Skipped += skipped
		}
	}

	s.logger.Info("player import finished",
		"files", summary.Files,
		"players", summary.Imported,
		"skipped", summary.Skipped,
	)

	return summary, nil
}

func (s *PlayerImportService) loadLeagueCodes(ctx context.Context) (map[string]string, error) {
	leagues, err := s.leagueRepo.List(ctx, league.Filter{Sort: league.SortCodeAsc})
	if err != nil {
		return nil, fmt.Errorf("load leagues: %w", err)
	}

	out := make(map[string]string, len(leagues))
	for _, l := range leagues {
		if l.Code != "" {
			out[l.Code] = l.ID
		}
	}
	return out, nil
}

// importFile loads one players file, returning imported and skipped row
// counts. File-level problems skip the whole file with zero counts.
func (s *PlayerImportService) importFile(ctx context.Context, path, leagueID string) (int, int) {
	name := filepath.Base(path)

	f, err := csvkit.Open(path)
	if err != nil {
		if errors.Is(err, csvkit.ErrEmptyFile) {
			s.logger.Warn("empty file, skipping", "file", name)
		} else {
			s.logger.Error("cannot open file, skipping", "file", name, "error", err)
		}
		return 0, 0
	}
	defer func() { _ = f.Close() }()

	header := f.Header()
	if len(header) < 2 {
		s.logger.Error("invalid header, skipping file", "file", name)
		return 0, 0
	}

	idx := csvkit.HeaderIndex(header, playerColumns)
	if idx["player_name"] == csvkit.Missing || idx["team_name"] == csvkit.Missing {
		s.logger.Error("missing player_name/team_name column, skipping file", "file", name)
		return 0, 0
	}

	now := time.Now().UTC()
	imported, skipped := 0, 0
	for {
		row, err := f.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn("unreadable row, skipping rest of file", "file", name, "error", err)
			break
		}

		playerName := strings.TrimSpace(csvkit.Cell(row, idx["player_name"]))
		teamName := strings.TrimSpace(csvkit.Cell(row, idx["team_name"]))
		if playerName == "" || teamName == "" {
			skipped++
			continue
		}

		t, ok, err := s.teamRepo.FindByNameOrSlug(ctx, leagueID, teamName, slug.Make(teamName, slug.FallbackTeam))
		if err != nil {
			s.logger.Warn("team lookup failed, row skipped", "team", teamName, "file", name, "error", err)
			skipped++
			continue
		}
		if !ok {
			skipped++
			continue
		}

		p := player.Player{
			LeagueID:   leagueID,
			TeamID:     t.ID,
			Team:       t.Name,
			PlayerName: playerName,
			// Name-only slug: the bulk path deliberately skips the
			// overall-rating salt used by the interactive create form.
			Slug:      slug.Make(playerName, slug.FallbackPlayer),
			Positions: strings.TrimSpace(csvkit.Cell(row, idx["positions"])),

			Overall:  coerce.Overall(csvkit.Cell(row, idx["overall"])),
			Age:      coerce.Int(csvkit.Cell(row, idx["age"])),
			Pac:      coerce.Int(csvkit.Cell(row, idx["pac"])),
			Sho:      coerce.Int(csvkit.Cell(row, idx["sho"])),
			Pas:      coerce.Int(csvkit.Cell(row, idx["pas"])),
			Dri:      coerce.Int(csvkit.Cell(row, idx["dri"])),
			Def:      coerce.Int(csvkit.Cell(row, idx["def"])),
			Phy:      coerce.Int(csvkit.Cell(row, idx["phy"])),
			HeightCm: coerce.Int(csvkit.Cell(row, idx["height_cm"])),

			PreferredFoot: strings.TrimSpace(csvkit.Cell(row, idx["preferred_foot"])),
			ContractStart: coerce.DateMs(csvkit.Cell(row, idx["contract_start"])),
			ContractEnd:   coerce.DateMs(csvkit.Cell(row, idx["contract_end"])),
			// Digit-strip, not Money: dumps write "999.999" meaning 999999.
			MarketValue: coerce.Int64(csvkit.Cell(row, idx["market_value"])),

			CreatedAt: now,
			UpdatedAt: now,
		}

		// Any upsert failure (constraint race, connectivity hiccup) is a
		// counted skip; the run never aborts on a row.
		if err := s.playerRepo.Upsert(ctx, p); err != nil {
			skipped++
			continue
		}
		imported++
	}

	s.logger.Info("players imported", "file", name, "count", imported, "skipped", skipped)
	return imported, skipped
}
