package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/report"
	"github.com/nerdware-developers/pos-backend/internal/repository"
)

// ClosingVariance compares the counted drawer against the day's
// recorded sales. Counted is cash minus the opening float plus M-Pesa
// receipts.
type ClosingVariance struct {
	Date     string  `json:"date"`
	Expected float64 `json:"expected"`
	Counted  float64 `json:"counted"`
	Variance float64 `json:"variance"`
}

type ClosingService struct {
	repo  repository.ClosingRepository
	sales repository.SalesRepository
	loc   *time.Location
}

func NewClosingService(repo repository.ClosingRepository, sales repository.SalesRepository, loc *time.Location) *ClosingService {
	if loc == nil {
		loc = time.Local
	}
	return &ClosingService{repo: repo, sales: sales, loc: loc}
}

func (s *ClosingService) Upsert(ctx context.Context, closing *domain.Closing) error {
	if closing.Date == "" {
		return fmt.Errorf("closing date is required")
	}
	if _, err := time.Parse("2006-01-02", closing.Date); err != nil {
		return fmt.Errorf("closing date must be YYYY-MM-DD: %w", err)
	}
	return s.repo.UpsertByDate(ctx, closing)
}

func (s *ClosingService) GetByDate(ctx context.Context, date string) (*domain.Closing, error) {
	return s.repo.GetByDate(ctx, date)
}

func (s *ClosingService) List(ctx context.Context, limit int) ([]domain.Closing, error) {
	return s.repo.List(ctx, limit)
}

// Variance recomputes the expected takings for the closing's date from
// the sale history and reports the difference against the counted
// drawer.
func (s *ClosingService) Variance(ctx context.Context, date string) (*ClosingVariance, error) {
	closing, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if closing == nil {
		return nil, fmt.Errorf("no closing recorded for %s", date)
	}

	sales, err := s.sales.List(ctx, domain.SaleFilter{Date: date})
	if err != nil {
		return nil, err
	}

	opts := report.Options{Date: date, Location: s.loc}
	expected := report.Aggregate(sales, nil, opts).Total
	counted := closing.Cash - closing.Float + closing.Mpesa

	return &ClosingVariance{
		Date:     date,
		Expected: expected,
		Counted:  counted,
		Variance: counted - expected,
	}, nil
}
