package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

type expenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *expenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	query := `
		SELECT id, description, category, amount, expense_date, payment_method, status, notes
		FROM expenses
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
		args = append(args, filter.Month, filter.Year)
		query += fmt.Sprintf(
			" AND EXTRACT(MONTH FROM expense_date) = $%d AND EXTRACT(YEAR FROM expense_date) = $%d",
			len(args)-1, len(args))
	}
	query += " ORDER BY expense_date DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var (
			e    domain.Expense
			date time.Time
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &date,
			&e.PaymentMethod, &e.Status, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = date.Format("2006-01-02")
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.Status == "" {
		expense.Status = "paid"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, description, category, amount, expense_date, payment_method, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, expense.ID, expense.Description, expense.Category, expense.Amount, expense.Date,
		expense.PaymentMethod, expense.Status, expense.Notes)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET description = $2, category = $3, amount = $4, expense_date = $5,
		    payment_method = $6, status = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
	`, expense.ID, expense.Description, expense.Category, expense.Amount, expense.Date,
		expense.PaymentMethod, expense.Status, expense.Notes)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("expense %s not found", expense.ID)
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) Upsert(ctx context.Context, expenses []domain.Expense) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO expenses (id, description, category, amount, expense_date, payment_method, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				amount = EXCLUDED.amount,
				expense_date = EXCLUDED.expense_date,
				payment_method = EXCLUDED.payment_method,
				status = EXCLUDED.status,
				notes = EXCLUDED.notes,
				updated_at = NOW()
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare expense upsert: %w", err)
		}
		defer stmt.Close()

		for _, e := range expenses {
			if e.ID == "" || e.Date == "" {
				continue
			}
			status := e.Status
			if status == "" {
				status = "paid"
			}
			if _, err := stmt.ExecContext(ctx, e.ID, e.Description, e.Category, e.Amount,
				e.Date, e.PaymentMethod, status, e.Notes); err != nil {
				return fmt.Errorf("failed to upsert expense %s: %w", e.ID, err)
			}
		}
		return nil
	})
}
