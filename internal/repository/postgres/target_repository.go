package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type targetRepository struct {
	db *DB
}

func NewTargetRepository(db *DB) *targetRepository {
	return &targetRepository{db: db}
}

func (r *targetRepository) List(ctx context.Context, status string) ([]domain.SalesTarget, error) {
	query := `
		SELECT id, target_type, target_amount, current_amount, start_date, end_date, status
		FROM sales_targets
	`
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY start_date DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	targets := []domain.SalesTarget{}
	for rows.Next() {
		var (
			t          domain.SalesTarget
			start, end time.Time
		)
		if err := rows.Scan(&t.ID, &t.Type, &t.TargetAmount, &t.CurrentAmount, &start, &end, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		t.StartDate = start.Format("2006-01-02")
		t.EndDate = end.Format("2006-01-02")
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate targets: %w", err)
	}
	return targets, nil
}

func (r *targetRepository) Create(ctx context.Context, target *domain.SalesTarget) error {
	if target.ID == "" {
		target.ID = uuid.NewString()
	}
	if target.Status == "" {
		target.Status = "active"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sales_targets (id, target_type, target_amount, current_amount, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, target.ID, target.Type, target.TargetAmount, target.CurrentAmount,
		target.StartDate, target.EndDate, target.Status)
	if err != nil {
		return fmt.Errorf("failed to create target: %w", err)
	}
	return nil
}

func (r *targetRepository) Update(ctx context.Context, target *domain.SalesTarget) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sales_targets
		SET target_type = $2, target_amount = $3, start_date = $4, end_date = $5,
		    status = $6, updated_at = NOW()
		WHERE id = $1
	`, target.ID, target.Type, target.TargetAmount, target.StartDate, target.EndDate, target.Status)
	if err != nil {
		return fmt.Errorf("failed to update target: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("target %s not found", target.ID)
	}
	return nil
}

func (r *targetRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sales_targets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
	}
	return nil
}

// UpdateCurrentAmount writes the recomputed progress figure. The
// stored value is a cache of the sum over the target window, never an
// accumulator.
func (r *targetRepository) UpdateCurrentAmount(ctx context.Context, id string, amount float64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sales_targets SET current_amount = $2, updated_at = NOW() WHERE id = $1
	`, id, amount)
	if err != nil {
		return fmt.Errorf("failed to update target amount: %w", err)
	}
	return nil
}
