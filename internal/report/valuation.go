package report

import (
	"sort"
	"time"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// StockValuation is the inventory worth widget on the dashboard.
type StockValuation struct {
	TotalCostValue   float64 `json:"totalCostValue"`
	TotalRetailValue float64 `json:"totalRetailValue"`
	TotalProfit      float64 `json:"totalProfit"`
	AverageMargin    float64 `json:"averageMargin"` // percent
	TotalProducts    int     `json:"totalProducts"`
	TotalStock       int     `json:"totalStock"`
}

// ValueStock prices the current catalog at cost and at retail.
func ValueStock(products []domain.Product) StockValuation {
	var v StockValuation
	for _, p := range products {
		stock := float64(p.Stock)
		if stock < 0 {
			stock = 0
		}
		v.TotalCostValue += sanitize(p.BuyingPrice) * stock
		v.TotalRetailValue += sanitize(p.Price) * stock
		v.TotalProducts++
		if p.Stock > 0 {
			v.TotalStock += p.Stock
		}
	}
	v.TotalProfit = v.TotalRetailValue - v.TotalCostValue
	v.AverageMargin = Margin(v.TotalProfit, v.TotalRetailValue)
	return v
}

// LowStock returns the products at or below the restock threshold,
// sorted by remaining stock ascending.
func LowStock(products []domain.Product, threshold int) []domain.Product {
	if threshold <= 0 {
		threshold = 10
	}
	var low []domain.Product
	for _, p := range products {
		if p.Stock < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	return low
}

// CategoryShare is one slice of the expense breakdown widget.
type CategoryShare struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ExpenseAnalytics is the dashboard expense widget.
type ExpenseAnalytics struct {
	TotalExpenses     float64         `json:"totalExpenses"`
	AverageExpense    float64         `json:"averageExpense"`
	PendingCount      int             `json:"pendingCount"`
	CategoryBreakdown []CategoryShare `json:"categoryBreakdown"`
}

// AnalyzeExpenses breaks expenses down by category with each
// category's share of the total, largest first.
func AnalyzeExpenses(expenses []domain.Expense) ExpenseAnalytics {
	a := ExpenseAnalytics{}
	totals := make(map[string]*CategoryShare)
	for _, exp := range expenses {
		amount := sanitize(exp.Amount)
		a.TotalExpenses += amount
		if exp.Status != "paid" {
			a.PendingCount++
		}
		category := exp.Category
		if category == "" {
			category = "Uncategorized"
		}
		share, ok := totals[category]
		if !ok {
			share = &CategoryShare{Category: category}
			totals[category] = share
		}
		share.Total += amount
		share.Count++
	}

	if n := len(expenses); n > 0 {
		a.AverageExpense = a.TotalExpenses / float64(n)
	}

	for _, share := range totals {
		if a.TotalExpenses > 0 {
			share.Percentage = share.Total / a.TotalExpenses * 100
		}
		a.CategoryBreakdown = append(a.CategoryBreakdown, *share)
	}
	sort.SliceStable(a.CategoryBreakdown, func(i, j int) bool {
		if a.CategoryBreakdown[i].Total != a.CategoryBreakdown[j].Total {
			return a.CategoryBreakdown[i].Total > a.CategoryBreakdown[j].Total
		}
		return a.CategoryBreakdown[i].Category < a.CategoryBreakdown[j].Category
	})
	return a
}

// TargetProgress recomputes a target's achieved amount from the sales
// inside [StartDate, EndDate], end date inclusive to end of day, and
// returns the achieved amount plus the capped completion percentage.
func TargetProgress(target domain.SalesTarget, sales []domain.Sale, loc *time.Location) (float64, float64) {
	if loc == nil {
		loc = time.Local
	}
	start, okStart := ParseTimestamp(target.StartDate, loc)
	end, okEnd := ParseTimestamp(target.EndDate, loc)
	if !okStart || !okEnd {
		return 0, 0
	}
	startLocal := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	endLocal := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)

	var current float64
	for _, sale := range sales {
		t, ok := ParseTimestamp(sale.Timestamp, loc)
		if !ok || t.Before(startLocal) || t.After(endLocal) {
			continue
		}
		amount := sanitize(sale.Total)
		if amount == 0 {
			amount = sanitize(sale.Subtotal)
		}
		current += amount
	}

	progress := 0.0
	if target.TargetAmount > 0 {
		progress = current / target.TargetAmount * 100
		if progress > 100 {
			progress = 100
		}
	}
	return current, progress
}
