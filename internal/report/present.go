package report

import (
	"sort"
	"time"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// ChartPoint is one bar of a bar-chart series. Percent is the value
// relative to the series maximum, for bar width only.
type ChartPoint struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// ChartSeries shapes a bucket map into bar-chart points sorted by
// label. Empty input yields an empty series, which the UI renders as a
// "no data" placeholder; the relative width never divides by zero.
func ChartSeries(buckets map[string]float64) []ChartPoint {
	if len(buckets) == 0 {
		return []ChartPoint{}
	}

	labels := make([]string, 0, len(buckets))
	max := 0.0
	for label, value := range buckets {
		labels = append(labels, label)
		if value > max {
			max = value
		}
	}
	sort.Strings(labels)
	if max == 0 {
		max = 1
	}

	points := make([]ChartPoint, 0, len(labels))
	for _, label := range labels {
		v := buckets[label]
		points = append(points, ChartPoint{
			Label:   label,
			Value:   v,
			Percent: v / max * 100,
		})
	}
	return points
}

// ProductRow is one row of the ranked product table.
type ProductRow struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Margin   float64 `json:"margin"` // percent
}

// RankedRows maps the top-product ranking into display rows with a
// per-product margin.
func RankedRows(res Result) []ProductRow {
	rows := make([]ProductRow, 0, len(res.TopProducts))
	for _, pt := range res.TopProducts {
		rows = append(rows, ProductRow{
			Name:     pt.Name,
			Quantity: pt.Quantity,
			Revenue:  pt.Revenue,
			Profit:   pt.Profit,
			Margin:   Margin(pt.Profit, pt.Revenue),
		})
	}
	return rows
}

// HourRank is one entry of the peak-hours list.
type HourRank struct {
	Hour   string  `json:"hour"`
	Sales  float64 `json:"sales"`
	Count  int     `json:"count"`
	Profit float64 `json:"profit"`
}

// PeakHours ranks hour buckets by revenue, descending, truncated to n.
func PeakHours(res Result, n int) []HourRank {
	ranked := make([]HourRank, 0, len(res.ByHour))
	for hour, b := range res.ByHour {
		ranked = append(ranked, HourRank{Hour: hour, Sales: b.Sales, Count: b.Count, Profit: b.Profit})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Sales != ranked[j].Sales {
			return ranked[i].Sales > ranked[j].Sales
		}
		return ranked[i].Hour < ranked[j].Hour
	})
	if len(ranked) > n && n > 0 {
		ranked = ranked[:n]
	}
	return ranked
}

// Summary holds the scalar cards of the reports screen.
type Summary struct {
	TotalSales     float64 `json:"total_sales"`
	GrossProfit    float64 `json:"gross_profit"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetProfit      float64 `json:"net_profit"`
	Transactions   int     `json:"transactions"`
	AvgTransaction float64 `json:"avg_transaction"`
	Margin         float64 `json:"margin"` // percent
}

// SummaryCards combines a sales pass and an expense pass into the
// summary-card scalars. All divisions are guarded.
func SummaryCards(res Result, exp ExpenseResult) Summary {
	return Summary{
		TotalSales:     res.Total,
		GrossProfit:    res.Profit,
		TotalExpenses:  exp.Total,
		NetProfit:      res.Profit - exp.Total,
		Transactions:   res.Count,
		AvgTransaction: res.AvgTransaction,
		Margin:         res.Margin,
	}
}

// PeriodSummary mirrors the upstream summary endpoint: today and the
// current calendar month, both on local-date boundaries.
type PeriodSummary struct {
	DailySales    float64 `json:"dailySales"`
	DailyProfit   float64 `json:"dailyProfit"`
	MonthlySales  float64 `json:"monthlySales"`
	MonthlyProfit float64 `json:"monthlyProfit"`
}

// DailyMonthlySummary recomputes the daily/monthly totals locally. The
// server-side shortcut bucketed on UTC dates, which shifted sales near
// midnight; this version reads calendar dates in loc.
func DailyMonthlySummary(sales []domain.Sale, now time.Time, loc *time.Location) PeriodSummary {
	if loc == nil {
		loc = time.Local
	}
	today := TodayLocal(now, loc)
	local := now.In(loc)

	var s PeriodSummary
	for _, sale := range sales {
		t, ok := ParseTimestamp(sale.Timestamp, loc)
		if !ok {
			continue
		}
		amount := sanitize(sale.Total)
		if amount == 0 {
			amount = sanitize(sale.Subtotal)
		}
		profit := sanitize(sale.Profit)

		lt := t.In(loc)
		if lt.Format("2006-01-02") == today {
			s.DailySales += amount
			s.DailyProfit += profit
		}
		if lt.Year() == local.Year() && lt.Month() == local.Month() {
			s.MonthlySales += amount
			s.MonthlyProfit += profit
		}
	}
	return s
}
