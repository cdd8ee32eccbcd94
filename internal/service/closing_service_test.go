package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type stubClosingRepo struct {
	byDate map[string]domain.Closing
}

func (r *stubClosingRepo) UpsertByDate(_ context.Context, c *domain.Closing) error {
	r.byDate[c.Date] = *c
	return nil
}

func (r *stubClosingRepo) GetByDate(_ context.Context, date string) (*domain.Closing, error) {
	c, ok := r.byDate[date]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *stubClosingRepo) List(context.Context, int) ([]domain.Closing, error) {
	return nil, nil
}

func TestClosingVariance(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*3600)
	closings := &stubClosingRepo{byDate: map[string]domain.Closing{}}
	sales := &stubSalesRepo{created: []domain.Sale{
		{ID: "s1", Timestamp: "2024-06-15T09:30:00+03:00", Total: 100},
		{ID: "s2", Timestamp: "2024-06-15T18:05:00+03:00", Total: 50},
		{ID: "s3", Timestamp: "2024-06-14T12:00:00+03:00", Total: 999},
	}}
	svc := NewClosingService(closings, sales, nairobi)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, &domain.Closing{
		Date: "2024-06-15", Cash: 1100, Float: 1000, Mpesa: 40,
	}))

	v, err := svc.Variance(ctx, "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 150.0, v.Expected)
	assert.Equal(t, 140.0, v.Counted)
	assert.Equal(t, -10.0, v.Variance)

	_, err = svc.Variance(ctx, "2024-06-16")
	assert.Error(t, err)
}

func TestClosingUpsertValidatesDate(t *testing.T) {
	svc := NewClosingService(&stubClosingRepo{byDate: map[string]domain.Closing{}}, &stubSalesRepo{}, nil)
	err := svc.Upsert(context.Background(), &domain.Closing{Date: "15/06/2024"})
	assert.Error(t, err)
}
