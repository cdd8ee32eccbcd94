package report

import (
	"math"
	"time"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// PercentChange computes period-over-period growth as a percentage,
// rounded to one decimal place. A zero or negative base yields 0: no
// meaningful percentage exists, and the caller must never see Inf/NaN.
func PercentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}

// PreviousWindow returns the half-open window [start, end) immediately
// preceding the current period of the same length: yesterday for day,
// the 7 days before the current week, the prior calendar month.
func PreviousWindow(period Period, now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	switch period {
	case PeriodDay:
		end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		return end.AddDate(0, 0, -1), end
	case PeriodWeek:
		return local.AddDate(0, 0, -14), local.AddDate(0, 0, -7)
	case PeriodMonth:
		end := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return end.AddDate(0, -1, 0), end
	default:
		return time.Time{}, time.Time{}
	}
}

// SalesGrowth compares the current period's revenue with the
// immediately preceding one. Periods without a defined predecessor
// (all, exact date) report 0.
func SalesGrowth(sales []domain.Sale, opts Options) float64 {
	opts = opts.normalized()
	if opts.Date != "" || opts.Period == PeriodAll {
		return 0
	}

	start, end := PreviousWindow(opts.Period, opts.Now, opts.Location)
	if start.IsZero() {
		return 0
	}

	var previous float64
	for _, sale := range sales {
		t, ok := ParseTimestamp(sale.Timestamp, opts.Location)
		if !ok || t.Before(start) || !t.Before(end) {
			continue
		}
		amount := sanitize(sale.Total)
		if amount == 0 {
			amount = sanitize(sale.Subtotal)
		}
		previous += amount
	}

	current := Aggregate(sales, nil, opts).Total
	return PercentChange(current, previous)
}
