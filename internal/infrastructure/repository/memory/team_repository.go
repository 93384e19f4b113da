package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/domain/team"
	"github.com/ydelmas/fc26admin/internal/platform/id"
)

type TeamRepository struct {
	mu    sync.RWMutex
	data  map[string]team.Team
	idGen id.Generator
}

func NewTeamRepository(idGen id.Generator) *TeamRepository {
	return &TeamRepository{
		data:  make(map[string]team.Team),
		idGen: idGen,
	}
}

func (r *TeamRepository) List(_ context.Context, f team.Filter) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(f.NameQuery)
	out := make([]team.Team, 0, len(r.data))
	for _, t := range r.data {
		if q != "" && !strings.Contains(strings.ToLower(t.Name), q) {
			continue
		}
		if f.LeagueID != "" && t.LeagueID != f.LeagueID {
			continue
		}
		out = append(out, t)
	}

	sortTeams(out, f.Sort)
	return out, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range r.data {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}

	sortTeams(out, team.SortNameAsc)
	return out, nil
}

func sortTeams(out []team.Team, s team.Sort) {
	switch s {
	case team.SortRatingDesc:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating > out[j].Rating
			}
			return out[i].Name < out[j].Name
		})
	case team.SortBudgetDesc:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Budget != out[j].Budget {
				return out[i].Budget > out[j].Budget
			}
			return out[i].Name < out[j].Name
		})
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.data[id]
	return t, ok, nil
}

func (r *TeamRepository) FindByNameOrSlug(_ context.Context, leagueID, name, slug string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.data {
		if t.LeagueID != leagueID {
			continue
		}
		if t.Name == name || t.Slug == slug {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	newID, err := r.idGen.NewID()
	if err != nil {
		return team.Team{}, errors.Wrap(err, "generate team id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = newID
	r.data[t.ID] = t
	return t, nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[t.ID]; !ok {
		return errors.Newf("team %s not found", t.ID)
	}
	r.data[t.ID] = t
	return nil
}

func (r *TeamRepository) Upsert(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, existing := range r.data {
		if existing.LeagueID == t.LeagueID && existing.Slug == t.Slug {
			t.ID = key
			t.CreatedAt = existing.CreatedAt
			r.data[key] = t
			return nil
		}
	}

	newID, err := r.idGen.NewID()
	if err != nil {
		return errors.Wrap(err, "generate team id")
	}
	t.ID = newID
	r.data[t.ID] = t
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, id)
	return nil
}

func (r *TeamRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.data)), nil
}

func (r *TeamRepository) CountByLeague(_ context.Context, leagueID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.data {
		if t.LeagueID == leagueID {
			n++
		}
	}
	return n, nil
}

func (r *TeamRepository) EnsureIndexes(_ context.Context) error { return nil }
