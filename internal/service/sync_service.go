package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/repository"
)

// SnapshotSource is implemented by the sheets client.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// SyncService reconciles the legacy spreadsheet into Postgres. The
// sheet stays the write target of the old front-end during migration,
// so the job runs on an interval and is safe to re-run: products and
// expenses upsert, sales only backfill.
type SyncService struct {
	source   SnapshotSource
	sales    repository.SaleImporter
	products repository.ProductRepository
	expenses repository.ExpenseRepository
	cache    cache.ReportCache
}

func NewSyncService(
	source SnapshotSource,
	sales repository.SaleImporter,
	products repository.ProductRepository,
	expenses repository.ExpenseRepository,
	reportCache cache.ReportCache,
) *SyncService {
	return &SyncService{
		source:   source,
		sales:    sales,
		products: products,
		expenses: expenses,
		cache:    reportCache,
	}
}

// SyncOnce pulls one snapshot and reconciles it.
func (s *SyncService) SyncOnce(ctx context.Context) error {
	started := time.Now()
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return err
	}

	if err := s.products.Upsert(ctx, snapshot.Products); err != nil {
		return err
	}
	if err := s.expenses.Upsert(ctx, snapshot.Expenses); err != nil {
		return err
	}
	imported, err := s.sales.ImportMissing(ctx, snapshot.Sales)
	if err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed")
	}

	log.Info().
		Int("sales_imported", imported).
		Int("products", len(snapshot.Products)).
		Int("expenses", len(snapshot.Expenses)).
		Dur("took", time.Since(started)).
		Msg("sheet sync complete")
	return nil
}

// Run executes SyncOnce on the given interval until the context is
// cancelled. Individual failures are logged and the loop keeps going.
func (s *SyncService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	if err := s.SyncOnce(ctx); err != nil {
		log.Error().Err(err).Msg("initial sheet sync failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				log.Error().Err(err).Msg("sheet sync failed")
			}
		}
	}
}
