package service

import (
	"context"
	"fmt"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/report"
	"github.com/nerdware-developers/pos-backend/internal/repository"
)

type ProductService struct {
	repo              repository.ProductRepository
	lowStockThreshold int
}

func NewProductService(repo repository.ProductRepository, lowStockThreshold int) *ProductService {
	return &ProductService{repo: repo, lowStockThreshold: lowStockThreshold}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.Price < 0 || product.BuyingPrice < 0 {
		return fmt.Errorf("product prices must not be negative")
	}
	return s.repo.Create(ctx, product)
}

func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("product id is required")
	}
	return s.repo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) LowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.LowStock(products, s.lowStockThreshold), nil
}

func (s *ProductService) Valuation(ctx context.Context) (*report.StockValuation, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	v := report.ValueStock(products)
	return &v, nil
}
