package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ydelmas/fc26admin/internal/domain/scoutreport"
	"github.com/ydelmas/fc26admin/internal/platform/id"
)

type ScoutReportRepository struct {
	mu    sync.RWMutex
	data  map[string]scoutreport.Report
	idGen id.Generator
}

func NewScoutReportRepository(idGen id.Generator) *ScoutReportRepository {
	return &ScoutReportRepository{
		data:  make(map[string]scoutreport.Report),
		idGen: idGen,
	}
}

func (r *ScoutReportRepository) ListByPlayer(_ context.Context, playerID string) ([]scoutreport.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoutreport.Report, 0)
	for _, rep := range r.data {
		if rep.PlayerID == playerID {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ScoutReportRepository) LatestByPlayers(_ context.Context, playerIDs []string) (map[string]scoutreport.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	out := make(map[string]scoutreport.Report)
	for _, rep := range r.data {
		if _, ok := wanted[rep.PlayerID]; !ok {
			continue
		}
		if current, ok := out[rep.PlayerID]; !ok || rep.CreatedAt.After(current.CreatedAt) {
			out[rep.PlayerID] = rep
		}
	}
	return out, nil
}

func (r *ScoutReportRepository) GetByID(_ context.Context, id string) (scoutreport.Report, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.data[id]
	return rep, ok, nil
}

func (r *ScoutReportRepository) Create(_ context.Context, rep scoutreport.Report) (scoutreport.Report, error) {
	newID, err := r.idGen.NewID()
	if err != nil {
		return scoutreport.Report{}, errors.Wrap(err, "generate report id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rep.ID = newID
	r.data[rep.ID] = rep
	return rep, nil
}

func (r *ScoutReportRepository) Update(_ context.Context, rep scoutreport.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[rep.ID]; !ok {
		return errors.Newf("report %s not found", rep.ID)
	}
	r.data[rep.ID] = rep
	return nil
}

func (r *ScoutReportRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, id)
	return nil
}

func (r *ScoutReportRepository) DeleteByPlayer(_ context.Context, playerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for key, rep := range r.data {
		if rep.PlayerID == playerID {
			delete(r.data, key)
			n++
		}
	}
	return n, nil
}

func (r *ScoutReportRepository) CountReportedPlayers(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, rep := range r.data {
		seen[rep.PlayerID] = struct{}{}
	}
	return int64(len(seen)), nil
}
