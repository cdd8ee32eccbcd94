package repository

import (
	"context"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// SalesRepository stores append-only sale facts. There is no update or
// delete: a sale, once committed, is history.
type SalesRepository interface {
	// Create persists the sale and decrements the stock of every line
	// item's product in the same transaction. It fails without side
	// effects if any product would go negative.
	Create(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
}

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	// Upsert is used by the sheet sync job to reconcile snapshots.
	Upsert(ctx context.Context, products []domain.Product) error
}

type ExpenseRepository interface {
	List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, expenses []domain.Expense) error
}

// ClosingRepository stores the end-of-day reconciliation snapshots,
// one per calendar date.
type ClosingRepository interface {
	UpsertByDate(ctx context.Context, closing *domain.Closing) error
	GetByDate(ctx context.Context, date string) (*domain.Closing, error)
	List(ctx context.Context, limit int) ([]domain.Closing, error)
}

type TargetRepository interface {
	List(ctx context.Context, status string) ([]domain.SalesTarget, error)
	Create(ctx context.Context, target *domain.SalesTarget) error
	Update(ctx context.Context, target *domain.SalesTarget) error
	Delete(ctx context.Context, id string) error
	UpdateCurrentAmount(ctx context.Context, id string, amount float64) error
}

// SaleImporter lets the sheet sync job backfill sales that were
// recorded upstream but are missing locally. Existing IDs are left
// untouched, keeping sales append-only.
type SaleImporter interface {
	ImportMissing(ctx context.Context, sales []domain.Sale) (int, error)
}
