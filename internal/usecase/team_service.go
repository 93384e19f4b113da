package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/platform/slug"
)

var teamSorts = map[string]team.Sort{
	"name_asc":    team.SortNameAsc,
	"rating_desc": team.SortRatingDesc,
	"budget_desc": team.SortBudgetDesc,
}

// TeamListParams narrows the teams listing.
type TeamListParams struct {
	Query    string
	LeagueID string
	Sort     string
}

type TeamService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewTeamService(leagueRepo league.Repository, teamRepo team.Repository, playerRepo player.Repository) *TeamService {
	return &TeamService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *TeamService) List(ctx context.Context, params TeamListParams) ([]team.Team, error) {
	sort, ok := teamSorts[params.Sort]
	if !ok {
		sort = team.SortNameAsc
	}

	teams, err := s.teamRepo.List(ctx, team.Filter{
		NameQuery: strings.TrimSpace(params.Query),
		LeagueID:  strings.TrimSpace(params.LeagueID),
		Sort:      sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (team.Team, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, ok, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	return t, nil
}

func (s *TeamService) Create(ctx context.Context, t team.Team) (team.Team, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.LeagueID = strings.TrimSpace(t.LeagueID)
	t.Slug = slug.Make(t.Name, slug.FallbackTeam)
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, t.LeagueID); err != nil {
		return team.Team{}, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return team.Team{}, fmt.Errorf("%w: league=%s", ErrNotFound, t.LeagueID)
	}

	if _, exists, err := s.teamRepo.FindByNameOrSlug(ctx, t.LeagueID, t.Name, t.Slug); err != nil {
		return team.Team{}, fmt.Errorf("check team slug: %w", err)
	} else if exists {
		return team.Team{}, fmt.Errorf("%w: team %s already in league", ErrConflict, t.Slug)
	}

	t.CreatedAt = time.Now().UTC()
	created, err := s.teamRepo.Create(ctx, t)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return created, nil
}

func (s *TeamService) Update(ctx context.Context, t team.Team) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Slug = slug.Make(t.Name, slug.FallbackTeam)

	current, ok, err := s.teamRepo.GetByID(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: team=%s", ErrNotFound, t.ID)
	}

	if t.LeagueID == "" {
		t.LeagueID = current.LeagueID
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if other, exists, err := s.teamRepo.FindByNameOrSlug(ctx, t.LeagueID, t.Name, t.Slug); err != nil {
		return fmt.Errorf("check team slug: %w", err)
	} else if exists && other.ID != current.ID {
		return fmt.Errorf("%w: team %s already in league", ErrConflict, t.Slug)
	}

	t.CreatedAt = current.CreatedAt
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	return nil
}

// Delete removes a team. Refused while any player still references it.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if _, ok, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get team: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	players, err := s.playerRepo.CountByTeam(ctx, id)
	if err != nil {
		return fmt.Errorf("count players of team: %w", err)
	}
	if players > 0 {
		return fmt.Errorf("%w: team has %d players", ErrHasDependents, players)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}
