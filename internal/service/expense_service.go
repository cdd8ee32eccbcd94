package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/report"
	"github.com/nerdware-developers/pos-backend/internal/repository"
)

type ExpenseService struct {
	repo  repository.ExpenseRepository
	cache cache.ReportCache
}

func NewExpenseService(repo repository.ExpenseRepository, reportCache cache.ReportCache) *ExpenseService {
	return &ExpenseService{repo: repo, cache: reportCache}
}

func (s *ExpenseService) validate(expense *domain.Expense) error {
	if expense.Description == "" {
		return fmt.Errorf("expense description is required")
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	if expense.Date == "" {
		return fmt.Errorf("expense date is required")
	}
	if expense.Status != "" && expense.Status != "paid" && expense.Status != "pending" {
		return fmt.Errorf("expense status must be paid or pending")
	}
	return nil
}

func (s *ExpenseService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed")
	}
}

func (s *ExpenseService) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	return s.repo.List(ctx, filter)
}

func (s *ExpenseService) Create(ctx context.Context, expense *domain.Expense) error {
	if err := s.validate(expense); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ExpenseService) Update(ctx context.Context, expense *domain.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("expense id is required")
	}
	if err := s.validate(expense); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ExpenseService) Analytics(ctx context.Context) (*report.ExpenseAnalytics, error) {
	expenses, err := s.repo.List(ctx, domain.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	a := report.AnalyzeExpenses(expenses)
	return &a, nil
}
