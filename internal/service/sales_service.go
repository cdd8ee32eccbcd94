package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/repository"
)

type SalesService struct {
	repo  repository.SalesRepository
	cache cache.ReportCache
}

func NewSalesService(repo repository.SalesRepository, reportCache cache.ReportCache) *SalesService {
	return &SalesService{repo: repo, cache: reportCache}
}

// Create validates and persists a checkout. Line totals are recomputed
// server-side; the client's figures are advisory only.
func (s *SalesService) Create(ctx context.Context, sale *domain.Sale) error {
	if len(sale.Items) == 0 {
		return fmt.Errorf("sale must have at least one item")
	}

	var subtotal, profit float64
	for i := range sale.Items {
		item := &sale.Items[i]
		if item.Quantity <= 0 {
			return fmt.Errorf("item %s has non-positive quantity", item.ProductName)
		}
		if item.Price < 0 {
			return fmt.Errorf("item %s has negative price", item.ProductName)
		}
		item.Subtotal = item.Price * item.Quantity
		item.Profit = (item.Price - item.BuyingPrice) * item.Quantity
		subtotal += item.Subtotal
		profit += item.Profit
	}
	sale.Subtotal = subtotal
	sale.Total = subtotal + sale.Tax
	sale.Profit = profit

	if sale.Timestamp == "" {
		sale.Timestamp = time.Now().Format(time.RFC3339)
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed")
	}
	return nil
}

func (s *SalesService) List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	return s.repo.List(ctx, filter)
}

func (s *SalesService) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	return s.repo.GetByID(ctx, id)
}
