package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ydelmas/fc26admin/internal/domain/player"
	"github.com/ydelmas/fc26admin/internal/domain/scoutreport"
)

type ScoutReportService struct {
	reportRepo scoutreport.Repository
	playerRepo player.Repository
}

func NewScoutReportService(reportRepo scoutreport.Repository, playerRepo player.Repository) *ScoutReportService {
	return &ScoutReportService{
		reportRepo: reportRepo,
		playerRepo: playerRepo,
	}
}

func (s *ScoutReportService) ListByPlayer(ctx context.Context, playerID string) ([]scoutreport.Report, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	reports, err := s.reportRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list reports by player: %w", err)
	}

	return reports, nil
}

func (s *ScoutReportService) Get(ctx context.Context, id string) (scoutreport.Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return scoutreport.Report{}, fmt.Errorf("%w: report id is required", ErrInvalidInput)
	}

	r, ok, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return scoutreport.Report{}, fmt.Errorf("get report: %w", err)
	}
	if !ok {
		return scoutreport.Report{}, fmt.Errorf("%w: report=%s", ErrNotFound, id)
	}

	return r, nil
}

func (s *ScoutReportService) Create(ctx context.Context, r scoutreport.Report) (scoutreport.Report, error) {
	r.PlayerID = strings.TrimSpace(r.PlayerID)
	r.Strengths = cleanLabels(r.Strengths)
	r.Weaknesses = cleanLabels(r.Weaknesses)
	r.Notes = strings.TrimSpace(r.Notes)
	if err := r.Validate(); err != nil {
		return scoutreport.Report{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, ok, err := s.playerRepo.GetByID(ctx, r.PlayerID); err != nil {
		return scoutreport.Report{}, fmt.Errorf("get player: %w", err)
	} else if !ok {
		return scoutreport.Report{}, fmt.Errorf("%w: player=%s", ErrNotFound, r.PlayerID)
	}

	r.CreatedAt = time.Now().UTC()
	created, err := s.reportRepo.Create(ctx, r)
	if err != nil {
		return scoutreport.Report{}, fmt.Errorf("create report: %w", err)
	}

	return created, nil
}

func (s *ScoutReportService) Update(ctx context.Context, r scoutreport.Report) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: report id is required", ErrInvalidInput)
	}

	current, ok, err := s.reportRepo.GetByID(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: report=%s", ErrNotFound, r.ID)
	}

	r.PlayerID = current.PlayerID
	r.CreatedAt = current.CreatedAt
	r.Strengths = cleanLabels(r.Strengths)
	r.Weaknesses = cleanLabels(r.Weaknesses)
	r.Notes = strings.TrimSpace(r.Notes)
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.reportRepo.Update(ctx, r); err != nil {
		return fmt.Errorf("update report: %w", err)
	}

	return nil
}

func (s *ScoutReportService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: report id is required", ErrInvalidInput)
	}

	if _, ok, err := s.reportRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get report: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: report=%s", ErrNotFound, id)
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	return nil
}

func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, label := range in {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out = append(out, label)
	}
	return out
}
