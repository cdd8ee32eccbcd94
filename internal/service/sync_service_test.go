package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type stubSource struct {
	snapshot domain.Snapshot
}

func (s *stubSource) Snapshot(context.Context) (*domain.Snapshot, error) {
	snap := s.snapshot
	snap.FetchedAt = time.Now()
	return &snap, nil
}

type stubImporter struct {
	seen map[string]bool
}

func (i *stubImporter) ImportMissing(_ context.Context, sales []domain.Sale) (int, error) {
	imported := 0
	for _, s := range sales {
		if !i.seen[s.ID] {
			i.seen[s.ID] = true
			imported++
		}
	}
	return imported, nil
}

type stubProductRepo struct {
	byID map[string]domain.Product
}

func (r *stubProductRepo) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}
func (r *stubProductRepo) GetByID(context.Context, string) (*domain.Product, error) { return nil, nil }
func (r *stubProductRepo) Create(context.Context, *domain.Product) error            { return nil }
func (r *stubProductRepo) Update(context.Context, *domain.Product) error            { return nil }
func (r *stubProductRepo) Delete(context.Context, string) error                     { return nil }
func (r *stubProductRepo) Upsert(_ context.Context, products []domain.Product) error {
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return nil
}

type stubExpenseRepo struct {
	byID map[string]domain.Expense
}

func (r *stubExpenseRepo) List(context.Context, domain.ExpenseFilter) ([]domain.Expense, error) {
	return nil, nil
}
func (r *stubExpenseRepo) Create(context.Context, *domain.Expense) error { return nil }
func (r *stubExpenseRepo) Update(context.Context, *domain.Expense) error { return nil }
func (r *stubExpenseRepo) Delete(context.Context, string) error          { return nil }
func (r *stubExpenseRepo) Upsert(_ context.Context, expenses []domain.Expense) error {
	for _, e := range expenses {
		r.byID[e.ID] = e
	}
	return nil
}

func TestSyncOnceIsIdempotent(t *testing.T) {
	source := &stubSource{snapshot: domain.Snapshot{
		Sales: []domain.Sale{
			{ID: "s1", Timestamp: "2024-06-15T09:30:00+03:00", Total: 100},
			{ID: "s2", Timestamp: "2024-06-14T18:05:00+03:00", Total: 50},
		},
		Products: []domain.Product{{ID: "p1", Name: "Soda", Stock: 40}},
		Expenses: []domain.Expense{{ID: "e1", Description: "Rent", Amount: 500, Date: "2024-06-01"}},
	}}
	importer := &stubImporter{seen: map[string]bool{}}
	products := &stubProductRepo{byID: map[string]domain.Product{}}
	expenses := &stubExpenseRepo{byID: map[string]domain.Expense{}}

	svc := NewSyncService(source, importer, products, expenses, cache.NewNoopReportCache())
	ctx := context.Background()

	require.NoError(t, svc.SyncOnce(ctx))
	assert.Len(t, importer.seen, 2)
	assert.Len(t, products.byID, 1)
	assert.Len(t, expenses.byID, 1)

	// A second run changes nothing.
	require.NoError(t, svc.SyncOnce(ctx))
	assert.Len(t, importer.seen, 2)
	assert.Len(t, products.byID, 1)
	assert.Len(t, expenses.byID, 1)
}
