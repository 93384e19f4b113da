package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/platform/id"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	data  map[string]player.Player
	idGen id.Generator
}

func NewPlayerRepository(idGen id.Generator) *PlayerRepository {
	return &PlayerRepository{
		data:  make(map[string]player.Player),
		idGen: idGen,
	}
}

func (r *PlayerRepository) matches(p player.Player, f player.Filter) bool {
	if f.NameQuery != "" && !strings.Contains(strings.ToLower(p.PlayerName), strings.ToLower(f.NameQuery)) {
		return false
	}
	if f.LeagueID != "" && p.LeagueID != f.LeagueID {
		return false
	}
	if f.TeamID != "" && p.TeamID != f.TeamID {
		return false
	}
	if f.OverallMin != nil && p.Overall < *f.OverallMin {
		return false
	}
	if f.OverallMax != nil && p.Overall > *f.OverallMax {
		return false
	}
	return true
}

func (r *PlayerRepository) List(_ context.Context, f player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.data))
	for _, p := range r.data {
		if r.matches(p, f) {
			out = append(out, p)
		}
	}

	sortPlayers(out, f.Sort)

	if f.Offset > 0 {
		if f.Offset >= int64(len(out)) {
			return []player.Player{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < int64(len(out)) {
		out = out[:f.Limit]
	}

	return out, nil
}

func (r *PlayerRepository) Count(_ context.Context, f player.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.data {
		if r.matches(p, f) {
			n++
		}
	}
	return n, nil
}

func (r *PlayerRepository) ListLatest(_ context.Context, limit int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.data))
	for _, p := range r.data {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit > 0 && limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string, limit int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.data {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sortPlayers(out, player.SortOverallDesc)

	if limit > 0 && limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func sortPlayers(out []player.Player, s player.Sort) {
	switch s {
	case player.SortValueDesc:
		sort.Slice(out, func(i, j int) bool {
			if out[i].MarketValue != out[j].MarketValue {
				return out[i].MarketValue > out[j].MarketValue
			}
			return out[i].PlayerName < out[j].PlayerName
		})
	case player.SortAgeAsc:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Age != out[j].Age {
				return out[i].Age < out[j].Age
			}
			return out[i].PlayerName < out[j].PlayerName
		})
	case player.SortNameAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	default:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Overall != out[j].Overall {
				return out[i].Overall > out[j].Overall
			}
			return out[i].PlayerName < out[j].PlayerName
		})
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data[id]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	newID, err := r.idGen.NewID()
	if err != nil {
		return player.Player{}, errors.Wrap(err, "generate player id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = newID
	r.data[p.ID] = p
	return p, nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[p.ID]; !ok {
		return errors.Newf("player %s not found", p.ID)
	}
	r.data[p.ID] = p
	return nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, existing := range r.data {
		if existing.TeamID == p.TeamID && existing.Slug == p.Slug {
			p.ID = key
			p.CreatedAt = existing.CreatedAt
			r.data[key] = p
			return nil
		}
	}

	newID, err := r.idGen.NewID()
	if err != nil {
		return errors.Wrap(err, "generate player id")
	}
	p.ID = newID
	r.data[p.ID] = p
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, id)
	return nil
}

func (r *PlayerRepository) CountByTeam(_ context.Context, teamID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.data {
		if p.TeamID == teamID {
			n++
		}
	}
	return n, nil
}

func (r *PlayerRepository) EnsureIndexes(_ context.Context) error { return nil }
