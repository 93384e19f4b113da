package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/platform/logging"
)

// leagueSorts is the full set of accepted league orderings; anything else
// falls back to code ascending.
var leagueSorts = map[string]league.Sort{
	"code_asc":  league.SortCodeAsc,
	"name_asc":  league.SortNameAsc,
	"level_asc": league.SortLevelAsc,
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

func (s *LeagueService) List(ctx context.Context, query, sortKey string) ([]league.League, error) {
	sort, ok := leagueSorts[sortKey]
	if !ok {
		sort = league.SortCodeAsc
	}

	leagues, err := s.leagueRepo.List(ctx, league.Filter{
		Query: strings.TrimSpace(query),
		Sort:  sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) Get(ctx context.Context, id string) (league.League, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, ok, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, id)
	}

	return l, nil
}

func (s *LeagueService) Create(ctx context.Context, l league.League) (league.League, error) {
	l.Code = strings.ToUpper(strings.TrimSpace(l.Code))
	l.Name = strings.TrimSpace(l.Name)
	l.Country = strings.TrimSpace(l.Country)
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.leagueRepo.GetByCode(ctx, l.Code); err != nil {
		return league.League{}, fmt.Errorf("check league code: %w", err)
	} else if exists {
		return league.League{}, fmt.Errorf("%w: league code %s already used", ErrConflict, l.Code)
	}

	l.CreatedAt = time.Now().UTC()
	created, err := s.leagueRepo.Create(ctx, l)
	if err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	return created, nil
}

func (s *LeagueService) Update(ctx context.Context, l league.League) error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	l.Code = strings.ToUpper(strings.TrimSpace(l.Code))
	l.Name = strings.TrimSpace(l.Name)
	l.Country = strings.TrimSpace(l.Country)
	if err := l.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, ok, err := s.leagueRepo.GetByID(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: league=%s", ErrNotFound, l.ID)
	}

	// A changed code must stay unique.
	if other, exists, err := s.leagueRepo.GetByCode(ctx, l.Code); err != nil {
		return fmt.Errorf("check league code: %w", err)
	} else if exists && other.ID != current.ID {
		return fmt.Errorf("%w: league code %s already used", ErrConflict, l.Code)
	}

	l.CreatedAt = current.CreatedAt
	if err := s.leagueRepo.Update(ctx, l); err != nil {
		return fmt.Errorf("update league: %w", err)
	}

	return nil
}

// Delete removes a league. Refused while any team still references it.
func (s *LeagueService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, ok, err := s.leagueRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get league: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: league=%s", ErrNotFound, id)
	}

	teams, err := s.teamRepo.CountByLeague(ctx, id)
	if err != nil {
		return fmt.Errorf("count teams of league: %w", err)
	}
	if teams > 0 {
		return fmt.Errorf("%w: league has %d teams", ErrHasDependents, teams)
	}

	if err := s.leagueRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	return nil
}

// Seed ensures the unique code index and upserts each league, touching
// nothing for codes already present. Safe to re-run.
func (s *LeagueService) Seed(ctx context.Context, leagues []league.League) (int, error) {
	if len(leagues) == 0 {
		return 0, fmt.Errorf("%w: leagues are required", ErrInvalidInput)
	}

	if err := s.leagueRepo.EnsureIndexes(ctx); err != nil {
		return 0, fmt.Errorf("ensure league indexes: %w", err)
	}

	now := time.Now().UTC()
	created := 0
	for _, l := range leagues {
		l.Code = strings.ToUpper(strings.TrimSpace(l.Code))
		l.Name = strings.TrimSpace(l.Name)
		if err := l.Validate(); err != nil {
			return created, fmt.Errorf("%w: league %s: %v", ErrInvalidInput, l.Code, err)
		}
		l.CreatedAt = now

		inserted, err := s.leagueRepo.SeedUpsert(ctx, l)
		if err != nil {
			return created, fmt.Errorf("seed league %s: %w", l.Code, err)
		}
		if inserted {
			created++
		}
		s.logger.Info("league seeded", "code", l.Code, "created", inserted)
	}

	return created, nil
}
