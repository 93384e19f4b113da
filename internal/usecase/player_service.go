package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/scoutreport"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
	"github.com/ydelmas/fc26admin/internal/platform/slug"
)

// playerPageSize is the fixed page length of the players listing.
const playerPageSize = 50

// rosterLimit caps the per-team player listing.
const rosterLimit = 200

var playerSorts = map[string]player.Sort{
	"overall_desc": player.SortOverallDesc,
	"value_desc":   player.SortValueDesc,
	"age_asc":      player.SortAgeAsc,
	"name_asc":     player.SortNameAsc,
}

// PlayerListParams narrows the paginated players listing.
type PlayerListParams struct {
	Query      string
	LeagueID   string
	TeamID     string
	OverallMin *int
	OverallMax *int
	Sort       string
	Page       int
}

// PlayerPage is one page of the players listing.
type PlayerPage struct {
	Items      []player.Player
	Total      int64
	Page       int
	TotalPages int
	// LatestReports maps player id to that player's most recent scout report.
	LatestReports map[string]scoutreport.Report
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	reportRepo scoutreport.Repository
	logger     *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	reportRepo scoutreport.Repository,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (s *PlayerService) List(ctx context.Context, params PlayerListParams) (PlayerPage, error) {
	sort, ok := playerSorts[params.Sort]
	if !ok {
		sort = player.SortOverallDesc
	}

	filter := player.Filter{
		NameQuery:  strings.TrimSpace(params.Query),
		LeagueID:   strings.TrimSpace(params.LeagueID),
		TeamID:     strings.TrimSpace(params.TeamID),
		OverallMin: params.OverallMin,
		OverallMax: params.OverallMax,
		Sort:       sort,
	}

	total, err := s.playerRepo.Count(ctx, filter)
	if err != nil {
		return PlayerPage{}, fmt.Errorf("count players: %w", err)
	}

	totalPages := int((total + playerPageSize - 1) / playerPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	filter.Offset = int64(page-1) * playerPageSize
	filter.Limit = playerPageSize

	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return PlayerPage{}, fmt.Errorf("list players: %w", err)
	}

	reports, err := s.latestReports(ctx, items)
	if err != nil {
		return PlayerPage{}, err
	}

	return PlayerPage{
		Items:         items,
		Total:         total,
		Page:          page,
		TotalPages:    totalPages,
		LatestReports: reports,
	}, nil
}

// Latest returns the most recently added players, newest first.
func (s *PlayerService) Latest(ctx context.Context, limit int64) ([]player.Player, error) {
	if limit <= 0 {
		limit = 10
	}
	players, err := s.playerRepo.ListLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest players: %w", err)
	}
	return players, nil
}

// TeamRoster returns a team's players by overall rating with each player's
// latest scout report.
func (s *PlayerService) TeamRoster(ctx context.Context, teamID string) ([]player.Player, map[string]scoutreport.Report, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if _, ok, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, nil, fmt.Errorf("get team: %w", err)
	} else if !ok {
		return nil, nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID, rosterLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("list team roster: %w", err)
	}

	reports, err := s.latestReports(ctx, players)
	if err != nil {
		return nil, nil, err
	}

	return players, reports, nil
}

func (s *PlayerService) Get(ctx context.Context, id string) (player.Player, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, ok, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, id)
	}

	return p, nil
}

// Create adds a player through the interactive admin path. Unlike the bulk
// importer, the slug here is salted with the overall rating.
func (s *PlayerService) Create(ctx context.Context, p player.Player) (player.Player, error) {
	p.PlayerName = strings.TrimSpace(p.PlayerName)
	p.TeamID = strings.TrimSpace(p.TeamID)
	if p.PlayerName == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	t, ok, err := s.teamRepo.GetByID(ctx, p.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, p.TeamID)
	}

	p.Team = t.Name
	p.LeagueID = t.LeagueID
	p.Slug = slug.MakeSalted(p.PlayerName, p.Overall)
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	created, err := s.playerRepo.Create(ctx, p)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, p player.Player) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p.PlayerName = strings.TrimSpace(p.PlayerName)

	current, ok, err := s.playerRepo.GetByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player=%s", ErrNotFound, p.ID)
	}

	if p.TeamID == "" {
		p.TeamID = current.TeamID
		p.Team = current.Team
		p.LeagueID = current.LeagueID
	} else if p.TeamID != current.TeamID {
		t, exists, err := s.teamRepo.GetByID(ctx, p.TeamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, p.TeamID)
		}
		p.Team = t.Name
		p.LeagueID = t.LeagueID
	}

	p.Slug = slug.MakeSalted(p.PlayerName, p.Overall)
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if err := s.playerRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	return nil
}

// Delete removes a player and cascades to every scout report referencing it.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	if _, ok, err := s.playerRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: player=%s", ErrNotFound, id)
	}

	deleted, err := s.reportRepo.DeleteByPlayer(ctx, id)
	if err != nil {
		return fmt.Errorf("delete scout reports of player: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("cascade deleted scout reports", "player_id", id, "reports", deleted)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

func (s *PlayerService) latestReports(ctx context.Context, players []player.Player) (map[string]scoutreport.Report, error) {
	if len(players) == 0 {
		return map[string]scoutreport.Report{}, nil
	}

	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}

	reports, err := s.reportRepo.LatestByPlayers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load latest reports: %w", err)
	}

	return reports, nil
}
