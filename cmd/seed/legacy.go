package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/nerdware-developers/pos-backend/internal/report"
)

func newLegacyCommand() *cli.Command {
	return &cli.Command{
		Name:  "legacy",
		Usage: "Import a JSON backup exported by the old web app",
		Flags: []cli.Flag{
			newDBURLFlag(),
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the JSON backup",
				Required: true,
			},
		},
		Before: initDB,
		After:  closeDB,
		Action: seedLegacy,
	}
}

// seedLegacy accepts any of the envelope shapes the old backend
// produced over the years and loads whatever it can read. Sales with
// unreadable timestamps are skipped, matching the report engine.
func seedLegacy(c *cli.Context) error {
	raw, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	db := contextDB(c)
	ctx := c.Context

	products := report.ToProductList(raw)
	for _, p := range products {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, name, price, buying_price, stock, category)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, id, p.Name, p.Price, p.BuyingPrice, p.Stock, p.Category)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.Name, err)
		}
	}

	expenses := report.ToExpenseList(raw)
	for _, e := range expenses {
		if e.Date == "" {
			continue
		}
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		status := e.Status
		if status == "" {
			status = "paid"
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO expenses (id, expense_date, description, category, amount, payment_method, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, id, e.Date, e.Description, e.Category, e.Amount, e.PaymentMethod, status, e.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.Description, err)
		}
	}

	sales := report.ToSaleList(raw)
	imported := 0
	for _, s := range sales {
		ts, ok := report.ParseTimestamp(s.Timestamp, nil)
		if !ok {
			log.Printf("skipping sale %s: unreadable timestamp %q", s.ID, s.Timestamp)
			continue
		}
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		res, err := db.ExecContext(ctx, `
			INSERT INTO sales (id, ts, subtotal, tax, total, profit, user_id, user_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, id, ts, s.Subtotal, s.Tax, s.Total, s.Profit, s.UserID, s.UserName)
		if err != nil {
			return fmt.Errorf("failed to insert sale %s: %w", id, err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			continue
		}
		for _, item := range s.Items {
			_, err := db.ExecContext(ctx, `
				INSERT INTO sale_items (sale_id, product_id, product_name, quantity, price, buying_price, subtotal, profit)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, id, item.ProductID, item.ProductName, item.Quantity, item.Price,
				item.BuyingPrice, item.Subtotal, item.Profit)
			if err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}
		}
		imported++
	}

	log.Printf("imported %d products, %d expenses, %d sales", len(products), len(expenses), imported)
	return nil
}
