package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type stubSalesRepo struct {
	created []domain.Sale
}

func (r *stubSalesRepo) Create(_ context.Context, sale *domain.Sale) error {
	r.created = append(r.created, *sale)
	return nil
}

func (r *stubSalesRepo) List(context.Context, domain.SaleFilter) ([]domain.Sale, error) {
	return r.created, nil
}

func (r *stubSalesRepo) GetByID(context.Context, string) (*domain.Sale, error) {
	return nil, nil
}

func TestSalesServiceCreateRecomputesTotals(t *testing.T) {
	repo := &stubSalesRepo{}
	svc := NewSalesService(repo, cache.NewNoopReportCache())

	sale := &domain.Sale{
		Items: []domain.SaleItem{
			{ProductID: "p1", ProductName: "Soda", Quantity: 2, Price: 50, BuyingPrice: 40, Subtotal: 999},
			{ProductID: "p2", ProductName: "Bread", Quantity: 1, Price: 60, BuyingPrice: 45},
		},
		Tax:   10,
		Total: 1,
	}
	require.NoError(t, svc.Create(context.Background(), sale))

	// Client-sent figures are discarded.
	assert.Equal(t, 160.0, sale.Subtotal)
	assert.Equal(t, 170.0, sale.Total)
	assert.Equal(t, 35.0, sale.Profit)
	assert.Equal(t, 100.0, sale.Items[0].Subtotal)
	assert.NotEmpty(t, sale.Timestamp)
	require.Len(t, repo.created, 1)
}

func TestSalesServiceCreateRejectsBadInput(t *testing.T) {
	svc := NewSalesService(&stubSalesRepo{}, cache.NewNoopReportCache())
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &domain.Sale{}))
	assert.Error(t, svc.Create(ctx, &domain.Sale{
		Items: []domain.SaleItem{{ProductName: "Soda", Quantity: 0, Price: 50}},
	}))
	assert.Error(t, svc.Create(ctx, &domain.Sale{
		Items: []domain.SaleItem{{ProductName: "Soda", Quantity: 1, Price: -5}},
	}))
}
