package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type closingRepository struct {
	db *DB
}

func NewClosingRepository(db *DB) *closingRepository {
	return &closingRepository{db: db}
}

// UpsertByDate keys on the calendar date: re-submitting a day's
// closing overwrites the previous entry instead of duplicating it.
func (r *closingRepository) UpsertByDate(ctx context.Context, closing *domain.Closing) error {
	if closing.ID == "" {
		closing.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO closings (id, closing_date, cash, cash_float, mpesa, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (closing_date) DO UPDATE SET
			cash = EXCLUDED.cash,
			cash_float = EXCLUDED.cash_float,
			mpesa = EXCLUDED.mpesa,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`, closing.ID, closing.Date, closing.Cash, closing.Float, closing.Mpesa, closing.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert closing: %w", err)
	}
	return nil
}

func (r *closingRepository) GetByDate(ctx context.Context, date string) (*domain.Closing, error) {
	var (
		c domain.Closing
		d time.Time
	)
	err := r.db.QueryRowxContext(ctx, `
		SELECT id, closing_date, cash, cash_float, mpesa, notes, updated_at
		FROM closings
		WHERE closing_date = $1::date
	`, date).Scan(&c.ID, &d, &c.Cash, &c.Float, &c.Mpesa, &c.Notes, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get closing: %w", err)
	}
	c.Date = d.Format("2006-01-02")
	return &c, nil
}

func (r *closingRepository) List(ctx context.Context, limit int) ([]domain.Closing, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, closing_date, cash, cash_float, mpesa, notes, updated_at
		FROM closings
		ORDER BY closing_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	defer rows.Close()

	closings := []domain.Closing{}
	for rows.Next() {
		var (
			c domain.Closing
			d time.Time
		)
		if err := rows.Scan(&c.ID, &d, &c.Cash, &c.Float, &c.Mpesa, &c.Notes, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan closing: %w", err)
		}
		c.Date = d.Format("2006-01-02")
		closings = append(closings, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate closings: %w", err)
	}
	return closings, nil
}
