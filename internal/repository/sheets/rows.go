package sheets

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// Cell values come back untyped. Numbers may arrive as float64 or as
// strings with currency noise, so every accessor degrades to a zero
// value instead of failing the row.

func asString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(row []interface{}, i int) float64 {
	if i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(row []interface{}, i int) int {
	return int(asFloat(row, i))
}

// Sales returns every readable sale row. Columns follow the legacy
// sheet layout: id, timestamp, items (JSON), subtotal, tax, total,
// profit, userId, userName. Rows without an id are skipped and the
// report engine drops anything with an unreadable timestamp later.
func (c *Client) Sales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := c.readRange(ctx, c.salesRange)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		s := domain.Sale{
			ID:        asString(row, 0),
			Timestamp: asString(row, 1),
			Subtotal:  asFloat(row, 3),
			Tax:       asFloat(row, 4),
			Total:     asFloat(row, 5),
			Profit:    asFloat(row, 6),
			UserID:    asString(row, 7),
			UserName:  asString(row, 8),
		}
		if s.ID == "" {
			continue
		}
		if raw := asString(row, 2); raw != "" {
			if err := json.Unmarshal([]byte(raw), &s.Items); err != nil {
				log.Warn().Str("sale_id", s.ID).Msg("unreadable items cell, keeping sale totals")
				s.Items = nil
			}
		}
		sales = append(sales, s)
	}
	return sales, nil
}

// Expenses columns: id, date, description, category, amount,
// paymentMethod, status, notes.
func (c *Client) Expenses(ctx context.Context) ([]domain.Expense, error) {
	rows, err := c.readRange(ctx, c.expensesRange)
	if err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, 0, len(rows))
	for _, row := range rows {
		e := domain.Expense{
			ID:            asString(row, 0),
			Date:          asString(row, 1),
			Description:   asString(row, 2),
			Category:      asString(row, 3),
			Amount:        asFloat(row, 4),
			PaymentMethod: asString(row, 5),
			Status:        asString(row, 6),
			Notes:         asString(row, 7),
		}
		if e.ID == "" || e.Date == "" {
			continue
		}
		if e.Status == "" {
			e.Status = "paid"
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Products columns: id, name, price, buyingPrice, stock, unitType,
// category, supplierId, supplierName, size, color, image.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.readRange(ctx, c.productsRange)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p := domain.Product{
			ID:           asString(row, 0),
			Name:         asString(row, 1),
			Price:        asFloat(row, 2),
			BuyingPrice:  asFloat(row, 3),
			Stock:        asInt(row, 4),
			UnitType:     asString(row, 5),
			Category:     asString(row, 6),
			SupplierID:   asString(row, 7),
			SupplierName: asString(row, 8),
			Size:         asString(row, 9),
			Color:        asString(row, 10),
			Image:        asString(row, 11),
		}
		if p.ID == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// Snapshot pulls all three tabs in one pass.
func (c *Client) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	sales, err := c.Sales(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := c.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Sales:     sales,
		Expenses:  expenses,
		Products:  products,
		FetchedAt: time.Now(),
	}, nil
}
