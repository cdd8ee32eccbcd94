package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/report"
	"github.com/nerdware-developers/pos-backend/internal/repository"
)

// TargetWithProgress decorates a stored target with its recomputed
// progress figures.
type TargetWithProgress struct {
	domain.SalesTarget
	Progress float64 `json:"progress"` // percent, capped at 100
}

type TargetService struct {
	repo  repository.TargetRepository
	sales repository.SalesRepository
	loc   *time.Location
}

func NewTargetService(repo repository.TargetRepository, sales repository.SalesRepository, loc *time.Location) *TargetService {
	if loc == nil {
		loc = time.Local
	}
	return &TargetService{repo: repo, sales: sales, loc: loc}
}

// List returns targets with CurrentAmount recomputed from the sale
// history. The stored figure is refreshed opportunistically; a failed
// write only costs staleness on the next read.
func (s *TargetService) List(ctx context.Context, status string) ([]TargetWithProgress, error) {
	targets, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	sales, err := s.sales.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, err
	}

	out := make([]TargetWithProgress, 0, len(targets))
	for _, target := range targets {
		current, progress := report.TargetProgress(target, sales, s.loc)
		if current != target.CurrentAmount {
			if err := s.repo.UpdateCurrentAmount(ctx, target.ID, current); err != nil {
				log.Warn().Err(err).Str("target_id", target.ID).Msg("failed to refresh target progress")
			}
			target.CurrentAmount = current
		}
		out = append(out, TargetWithProgress{SalesTarget: target, Progress: progress})
	}
	return out, nil
}

func (s *TargetService) validate(target *domain.SalesTarget) error {
	switch target.Type {
	case "daily", "weekly", "monthly", "yearly":
	default:
		return fmt.Errorf("target type must be daily, weekly, monthly or yearly")
	}
	if target.TargetAmount <= 0 {
		return fmt.Errorf("target amount must be positive")
	}
	start, err := time.Parse("2006-01-02", target.StartDate)
	if err != nil {
		return fmt.Errorf("start date must be YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse("2006-01-02", target.EndDate)
	if err != nil {
		return fmt.Errorf("end date must be YYYY-MM-DD: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date must not precede start date")
	}
	return nil
}

func (s *TargetService) Create(ctx context.Context, target *domain.SalesTarget) error {
	if err := s.validate(target); err != nil {
		return err
	}
	return s.repo.Create(ctx, target)
}

func (s *TargetService) Update(ctx context.Context, target *domain.SalesTarget) error {
	if target.ID == "" {
		return fmt.Errorf("target id is required")
	}
	if err := s.validate(target); err != nil {
		return err
	}
	return s.repo.Update(ctx, target)
}

func (s *TargetService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
