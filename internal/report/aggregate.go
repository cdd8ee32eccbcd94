package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// Period selects the filter window, computed from Options.Now.
type Period string

const (
	PeriodDay   Period = "day"   // local midnight of today through now
	PeriodWeek  Period = "week"  // now - 7 days through now
	PeriodMonth Period = "month" // first of the month through now
	PeriodAll   Period = "all"
)

const defaultTopN = 10

// Options parameterizes one aggregation pass. Now and Location are
// explicit so the same inputs always produce the same output.
type Options struct {
	Period   Period
	Date     string // exact local calendar date; overrides Period when set
	UserID   string // restrict to one seller, empty for all
	TopN     int
	Now      time.Time
	Location *time.Location
}

func (o Options) normalized() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.TopN <= 0 {
		o.TopN = defaultTopN
	}
	if o.Period == "" {
		o.Period = PeriodAll
	}
	return o
}

// windowStart returns the inclusive lower bound of the filter window,
// or ok=false when the period has no lower bound.
func (o Options) windowStart() (time.Time, bool) {
	now := o.Now.In(o.Location)
	switch o.Period {
	case PeriodDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, o.Location), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, o.Location), true
	default:
		return time.Time{}, false
	}
}

func (o Options) inWindow(t time.Time) bool {
	if t.After(o.Now) {
		return false
	}
	start, bounded := o.windowStart()
	if !bounded {
		return true
	}
	return !t.Before(start)
}

// HourBucket accumulates the sales that landed in one hour of the day.
type HourBucket struct {
	Sales  float64 `json:"sales"`
	Count  int     `json:"count"`
	Profit float64 `json:"profit"`
}

// ProductTotals accumulates line items per product.
type ProductTotals struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// Result is the outcome of one aggregation pass over a sales snapshot.
type Result struct {
	Total          float64                  `json:"total"`
	Profit         float64                  `json:"profit"`
	Count          int                      `json:"count"`
	AvgTransaction float64                  `json:"avg_transaction"`
	Margin         float64                  `json:"margin"` // percent
	ByDay          map[string]float64       `json:"by_day"`
	ByHour         map[string]HourBucket    `json:"by_hour"`
	ByCategory     map[string]float64       `json:"by_category"`
	ByProduct      map[string]ProductTotals `json:"by_product"`
	TopProducts    []ProductTotals          `json:"top_products"`
}

// Aggregate buckets and sums a sales snapshot. The catalog is used to
// resolve line-item categories; items whose product cannot be found go
// to "Uncategorized". Records with an unreadable timestamp are skipped
// entirely so bucket sums always reconcile with the grand total.
func Aggregate(sales []domain.Sale, products []domain.Product, opts Options) Result {
	opts = opts.normalized()

	res := Result{
		ByDay:      make(map[string]float64),
		ByHour:     make(map[string]HourBucket),
		ByCategory: make(map[string]float64),
		ByProduct:  make(map[string]ProductTotals),
	}

	byID := make(map[string]domain.Product, len(products))
	byName := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if p.ID != "" {
			byID[p.ID] = p
		}
		if p.Name != "" {
			byName[p.Name] = p
		}
	}

	// order remembers first-encounter rank per product key so topN ties
	// break stably.
	order := make(map[string]int)

	for _, sale := range sales {
		if opts.UserID != "" && sale.UserID != opts.UserID {
			continue
		}

		t, ok := ParseTimestamp(sale.Timestamp, opts.Location)
		if !ok {
			continue
		}
		if opts.Date != "" {
			if !IsOnDate(sale.Timestamp, opts.Date, opts.Location) {
				continue
			}
		} else if !opts.inWindow(t) {
			continue
		}

		amount := sanitize(sale.Total)
		if amount == 0 {
			amount = sanitize(sale.Subtotal)
		}
		profit := sanitize(sale.Profit)

		res.Total += amount
		res.Profit += profit
		res.Count++

		day := t.In(opts.Location).Format("2006-01-02")
		res.ByDay[day] += amount

		hourLabel := fmt.Sprintf("%d:00", t.In(opts.Location).Hour())
		hb := res.ByHour[hourLabel]
		hb.Sales += amount
		hb.Count++
		hb.Profit += profit
		res.ByHour[hourLabel] = hb

		for _, item := range sale.Items {
			key := item.ProductID
			if key == "" {
				key = item.ProductName
			}
			if key == "" {
				continue
			}
			if _, seen := order[key]; !seen {
				order[key] = len(order)
			}
			pt := res.ByProduct[key]
			if pt.Name == "" {
				pt.Name = item.ProductName
				if pt.Name == "" {
					pt.Name = key
				}
			}
			pt.Quantity += sanitize(item.Quantity)
			pt.Revenue += sanitize(item.Subtotal)
			pt.Profit += sanitize(item.Profit)
			res.ByProduct[key] = pt

			category := "Uncategorized"
			if p, ok := byID[item.ProductID]; ok && p.Category != "" {
				category = p.Category
			} else if p, ok := byName[item.ProductName]; ok && p.Category != "" {
				category = p.Category
			}
			res.ByCategory[category] += sanitize(item.Subtotal)
		}
	}

	if res.Count > 0 {
		res.AvgTransaction = res.Total / float64(res.Count)
	}
	res.Margin = Margin(res.Profit, res.Total)
	res.TopProducts = topProducts(res.ByProduct, order, opts.TopN)

	return res
}

// topProducts ranks product buckets descending by quantity sold,
// breaking ties by first-encountered order, and truncates to n.
func topProducts(byProduct map[string]ProductTotals, order map[string]int, n int) []ProductTotals {
	keys := make([]string, 0, len(byProduct))
	for k := range byProduct {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		qi, qj := byProduct[keys[i]].Quantity, byProduct[keys[j]].Quantity
		if qi != qj {
			return qi > qj
		}
		return order[keys[i]] < order[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	ranked := make([]ProductTotals, 0, len(keys))
	for _, k := range keys {
		ranked = append(ranked, byProduct[k])
	}
	return ranked
}

// ExpenseResult is the outcome of one aggregation pass over expenses.
type ExpenseResult struct {
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
	Average    float64            `json:"average"`
	ByCategory map[string]float64 `json:"by_category"`
}

// AggregateExpenses filters and sums expense records. Expense dates
// are calendar dates, matched against the same windows as sales by
// treating each as local midnight.
func AggregateExpenses(expenses []domain.Expense, opts Options) ExpenseResult {
	opts = opts.normalized()

	res := ExpenseResult{ByCategory: make(map[string]float64)}
	for _, exp := range expenses {
		if opts.Date != "" {
			if exp.Date != opts.Date {
				continue
			}
		} else {
			// Calendar dates parse as local midnight.
			t, ok := ParseTimestamp(exp.Date, opts.Location)
			if !ok {
				continue
			}
			if !opts.inWindow(t) {
				continue
			}
		}

		res.Total += sanitize(exp.Amount)
		res.Count++
		category := exp.Category
		if category == "" {
			category = "Uncategorized"
		}
		res.ByCategory[category] += sanitize(exp.Amount)
	}

	if res.Count > 0 {
		res.Average = res.Total / float64(res.Count)
	}
	return res
}

// Margin returns profit/total as a percentage, 0 when total is 0.
func Margin(profit, total float64) float64 {
	if total == 0 {
		return 0
	}
	return profit / total * 100
}

// sanitize maps NaN and infinities to 0 so one bad field can never
// poison a running sum.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
