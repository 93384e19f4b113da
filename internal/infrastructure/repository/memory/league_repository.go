// Package memory holds map-backed repositories used by tests and local
// experiments. They mirror the document-store semantics, natural-key upserts
// included.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/domain/league"
	"github.com/ydelmas/fc26admin/internal/platform/id"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	data  map[string]league.League
	idGen id.Generator
}

func NewLeagueRepository(idGen id.Generator) *LeagueRepository {
	return &LeagueRepository{
		data:  make(map[string]league.League),
		idGen: idGen,
	}
}

func (r *LeagueRepository) List(_ context.Context, f league.Filter) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(f.Query)
	out := make([]league.League, 0, len(r.data))
	for _, l := range r.data {
		if q != "" &&
			!strings.Contains(strings.ToLower(l.Code), q) &&
			!strings.Contains(strings.ToLower(l.Name), q) &&
			!strings.Contains(strings.ToLower(l.Country), q) {
			continue
		}
		out = append(out, l)
	}

	switch f.Sort {
	case league.SortNameAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case league.SortLevelAsc:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Level != out[j].Level {
				return out[i].Level < out[j].Level
			}
			return out[i].Code < out[j].Code
		})
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.data[id]
	return l, ok, nil
}

func (r *LeagueRepository) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.data {
		if l.Code == code {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) (league.League, error) {
	newID, err := r.idGen.NewID()
	if err != nil {
		return league.League{}, errors.Wrap(err, "generate league id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l.ID = newID
	r.data[l.ID] = l
	return l, nil
}

func (r *LeagueRepository) Update(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[l.ID]; !ok {
		return errors.Newf("league %s not found", l.ID)
	}
	r.data[l.ID] = l
	return nil
}

func (r *LeagueRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, id)
	return nil
}

func (r *LeagueRepository) SeedUpsert(_ context.Context, l league.League) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.data {
		if existing.Code == l.Code {
			return false, nil
		}
	}

	newID, err := r.idGen.NewID()
	if err != nil {
		return false, errors.Wrap(err, "generate league id")
	}
	l.ID = newID
	r.data[l.ID] = l
	return true, nil
}

func (r *LeagueRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.data)), nil
}

func (r *LeagueRepository) EnsureIndexes(_ context.Context) error { return nil }
