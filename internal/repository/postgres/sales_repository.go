package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/report"
)

// ErrInsufficientStock is returned when a sale would drive a product's
// stock below zero. The whole sale rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

type salesRepository struct {
	db  *DB
	loc *time.Location
}

func NewSalesRepository(db *DB, loc *time.Location) *salesRepository {
	if loc == nil {
		loc = time.Local
	}
	return &salesRepository{db: db, loc: loc}
}

// Create inserts the sale header, its line items, and decrements each
// product's stock in one transaction. The legacy front-end did the
// stock update as a second, uncoordinated API call, so a failure after
// the sale insert left stock and history inconsistent; here either
// everything commits or nothing does.
func (r *salesRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	ts, ok := report.ParseTimestamp(sale.Timestamp, r.loc)
	if !ok {
		ts = time.Now()
		sale.Timestamp = ts.Format(time.RFC3339)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales (id, ts, subtotal, tax, total, profit, user_id, user_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, sale.ID, ts, sale.Subtotal, sale.Tax, sale.Total, sale.Profit, sale.UserID, sale.UserName)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		itemStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, product_name, quantity, price, buying_price, subtotal, profit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare item statement: %w", err)
		}
		defer itemStmt.Close()

		for _, item := range sale.Items {
			if _, err := itemStmt.ExecContext(ctx, sale.ID, item.ProductID, item.ProductName,
				item.Quantity, item.Price, item.BuyingPrice, item.Subtotal, item.Profit); err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}

			if item.ProductID == "" {
				continue
			}
			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $1, updated_at = NOW()
				WHERE id = $2 AND stock >= $1
			`, int(item.Quantity), item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
			if affected, _ := res.RowsAffected(); affected == 0 {
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
			}
		}

		return nil
	})
}

func (r *salesRepository) List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	query := `
		SELECT id, ts, subtotal, tax, total, profit, user_id, user_name
		FROM sales
		WHERE 1=1
	`
	args := []interface{}{}
	tz := r.loc.String()

	if filter.Date != "" {
		args = append(args, tz, filter.Date)
		query += fmt.Sprintf(" AND (ts AT TIME ZONE $%d)::date = $%d::date", len(args)-1, len(args))
	}
	if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
		args = append(args, tz, filter.Month, filter.Year)
		query += fmt.Sprintf(
			" AND EXTRACT(MONTH FROM ts AT TIME ZONE $%d) = $%d AND EXTRACT(YEAR FROM ts AT TIME ZONE $%d) = $%d",
			len(args)-2, len(args)-1, len(args)-2, len(args))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	query += " ORDER BY ts DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	ids := make([]string, 0)
	for rows.Next() {
		var (
			s  domain.Sale
			ts time.Time
		)
		if err := rows.Scan(&s.ID, &ts, &s.Subtotal, &s.Tax, &s.Total, &s.Profit, &s.UserID, &s.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		s.Timestamp = ts.In(r.loc).Format(time.RFC3339)
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}
	if len(sales) == 0 {
		return []domain.Sale{}, nil
	}

	if err := r.attachItems(ctx, sales, ids); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *salesRepository) attachItems(ctx context.Context, sales []domain.Sale, ids []string) error {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT sale_id, product_id, product_name, quantity, price, buying_price, subtotal, profit
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	itemsBySale := make(map[string][]domain.SaleItem, len(sales))
	for rows.Next() {
		var (
			saleID string
			item   domain.SaleItem
		)
		if err := rows.Scan(&saleID, &item.ProductID, &item.ProductName, &item.Quantity,
			&item.Price, &item.BuyingPrice, &item.Subtotal, &item.Profit); err != nil {
			return fmt.Errorf("failed to scan sale item: %w", err)
		}
		itemsBySale[saleID] = append(itemsBySale[saleID], item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate sale items: %w", err)
	}

	for i := range sales {
		sales[i].Items = itemsBySale[sales[i].ID]
	}
	return nil
}

func (r *salesRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	var (
		s  domain.Sale
		ts time.Time
	)
	err := r.db.QueryRowxContext(ctx, `
		SELECT id, ts, subtotal, tax, total, profit, user_id, user_name
		FROM sales WHERE id = $1
	`, id).Scan(&s.ID, &ts, &s.Subtotal, &s.Tax, &s.Total, &s.Profit, &s.UserID, &s.UserName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	s.Timestamp = ts.In(r.loc).Format(time.RFC3339)

	one := []domain.Sale{s}
	if err := r.attachItems(ctx, one, []string{s.ID}); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// ImportMissing inserts sales pulled from the legacy sheet that are
// not yet stored locally. Stock is not touched: the sheet flow already
// adjusted it upstream.
func (r *salesRepository) ImportMissing(ctx context.Context, sales []domain.Sale) (int, error) {
	imported := 0
	for _, sale := range sales {
		if sale.ID == "" {
			continue
		}
		ts, ok := report.ParseTimestamp(sale.Timestamp, r.loc)
		if !ok {
			continue
		}

		err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO sales (id, ts, subtotal, tax, total, profit, user_id, user_name)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (id) DO NOTHING
			`, sale.ID, ts, sale.Subtotal, sale.Tax, sale.Total, sale.Profit, sale.UserID, sale.UserName)
			if err != nil {
				return fmt.Errorf("failed to import sale: %w", err)
			}
			affected, _ := res.RowsAffected()
			if affected == 0 {
				return nil
			}

			for _, item := range sale.Items {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO sale_items (sale_id, product_id, product_name, quantity, price, buying_price, subtotal, profit)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				`, sale.ID, item.ProductID, item.ProductName, item.Quantity,
					item.Price, item.BuyingPrice, item.Subtotal, item.Profit); err != nil {
					return fmt.Errorf("failed to import sale item: %w", err)
				}
			}
			imported++
			return nil
		})
		if err != nil {
			return imported, err
		}
	}
	return imported, nil
}
