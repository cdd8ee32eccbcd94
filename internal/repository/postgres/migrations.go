package postgres

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		price         DOUBLE PRECISION NOT NULL DEFAULT 0,
		buying_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock         INTEGER NOT NULL DEFAULT 0,
		unit_type     TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL DEFAULT '',
		supplier_id   TEXT NOT NULL DEFAULT '',
		supplier_name TEXT NOT NULL DEFAULT '',
		size          TEXT NOT NULL DEFAULT '',
		color         TEXT NOT NULL DEFAULT '',
		image         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id         TEXT PRIMARY KEY,
		ts         TIMESTAMPTZ NOT NULL,
		subtotal   DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax        DOUBLE PRECISION NOT NULL DEFAULT 0,
		total      DOUBLE PRECISION NOT NULL DEFAULT 0,
		profit     DOUBLE PRECISION NOT NULL DEFAULT 0,
		user_id    TEXT NOT NULL DEFAULT '',
		user_name  TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_ts ON sales (ts)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id           BIGSERIAL PRIMARY KEY,
		sale_id      TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id   TEXT NOT NULL DEFAULT '',
		product_name TEXT NOT NULL DEFAULT '',
		quantity     DOUBLE PRECISION NOT NULL DEFAULT 0,
		price        DOUBLE PRECISION NOT NULL DEFAULT 0,
		buying_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		subtotal     DOUBLE PRECISION NOT NULL DEFAULT 0,
		profit       DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_product_id ON sale_items (product_id)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id             TEXT PRIMARY KEY,
		description    TEXT NOT NULL DEFAULT '',
		category       TEXT NOT NULL DEFAULT '',
		amount         DOUBLE PRECISION NOT NULL DEFAULT 0,
		expense_date   DATE NOT NULL,
		payment_method TEXT NOT NULL DEFAULT 'Cash',
		status         TEXT NOT NULL DEFAULT 'paid',
		notes          TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS closings (
		id           TEXT PRIMARY KEY,
		closing_date DATE NOT NULL UNIQUE,
		cash         DOUBLE PRECISION NOT NULL DEFAULT 0,
		cash_float   DOUBLE PRECISION NOT NULL DEFAULT 0,
		mpesa        DOUBLE PRECISION NOT NULL DEFAULT 0,
		notes        TEXT NOT NULL DEFAULT '',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales_targets (
		id             TEXT PRIMARY KEY,
		target_type    TEXT NOT NULL,
		target_amount  DOUBLE PRECISION NOT NULL DEFAULT 0,
		current_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		start_date     DATE NOT NULL,
		end_date       DATE NOT NULL,
		status         TEXT NOT NULL DEFAULT 'active',
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema. Statements are idempotent so the server
// can run this on every boot.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
