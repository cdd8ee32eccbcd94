package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

func testNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, nairobi)
}

func testOptions(period Period) Options {
	return Options{Period: period, Now: testNow(), Location: nairobi}
}

func sampleSales() []domain.Sale {
	return []domain.Sale{
		{
			ID:        "s1",
			Timestamp: "2024-06-15T09:30:00+03:00",
			Total:     100, Subtotal: 100, Profit: 20,
			Items: []domain.SaleItem{
				{ProductID: "p1", ProductName: "Soda", Quantity: 4, Price: 25, Subtotal: 100, Profit: 20},
			},
		},
		{
			ID:        "s2",
			Timestamp: "2024-06-14T18:05:00+03:00",
			Total:     50, Subtotal: 50, Profit: 5,
			Items: []domain.SaleItem{
				{ProductID: "p2", ProductName: "Bread", Quantity: 1, Price: 50, Subtotal: 50, Profit: 5},
			},
		},
		{
			ID:        "s3",
			Timestamp: "2024-06-01T10:00:00+03:00",
			Total:     200, Profit: 40,
			Items: []domain.SaleItem{
				{ProductID: "p1", ProductName: "Soda", Quantity: 8, Price: 25, Subtotal: 200, Profit: 40},
			},
		},
	}
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Soda", Category: "Drinks", Price: 25, BuyingPrice: 20, Stock: 40},
		{ID: "p2", Name: "Bread", Category: "Bakery", Price: 50, BuyingPrice: 45, Stock: 5},
	}
}

func TestAggregateBucketsReconcileWithTotal(t *testing.T) {
	res := Aggregate(sampleSales(), sampleProducts(), testOptions(PeriodAll))

	var daySum float64
	for _, v := range res.ByDay {
		daySum += v
	}
	assert.InDelta(t, res.Total, daySum, 1e-9)
	assert.Equal(t, 350.0, res.Total)
	assert.Equal(t, 65.0, res.Profit)
	assert.Equal(t, 3, res.Count)
}

func TestAggregatePeriodWindows(t *testing.T) {
	sales := sampleSales()
	products := sampleProducts()

	day := Aggregate(sales, products, testOptions(PeriodDay))
	assert.Equal(t, 100.0, day.Total)
	assert.Equal(t, 1, day.Count)

	week := Aggregate(sales, products, testOptions(PeriodWeek))
	assert.Equal(t, 150.0, week.Total)

	month := Aggregate(sales, products, testOptions(PeriodMonth))
	assert.Equal(t, 350.0, month.Total)
}

func TestAggregateExactDateUsesLocalCalendarDay(t *testing.T) {
	// Both instants are 20 minutes apart, but they land on different
	// local calendar dates in UTC+3.
	sales := []domain.Sale{
		{Timestamp: "2024-06-01T23:50:00+03:00", Total: 100, Profit: 20},
		{Timestamp: "2024-06-02T00:10:00+03:00", Total: 50, Profit: 5},
	}

	opts := testOptions(PeriodAll)
	opts.Date = "2024-06-01"
	res := Aggregate(sales, nil, opts)

	assert.Equal(t, 100.0, res.Total)
	assert.Equal(t, 20.0, res.Profit)
	assert.Equal(t, 1, res.Count)
}

func TestAggregateExactDateZonelessTimestamps(t *testing.T) {
	// Sheet cells carry shop-local wall clock with no offset; a sale
	// rung up just before midnight must stay on that day's report.
	sales := []domain.Sale{
		{Timestamp: "2024-06-01 23:50:00", Total: 100, Profit: 20},
	}

	opts := testOptions(PeriodAll)
	opts.Date = "2024-06-01"
	res := Aggregate(sales, nil, opts)
	assert.Equal(t, 100.0, res.Total)
	assert.Equal(t, 20.0, res.Profit)
	assert.Equal(t, 1, res.Count)

	opts.Date = "2024-06-02"
	next := Aggregate(sales, nil, opts)
	assert.Zero(t, next.Total)
	assert.Zero(t, next.Count)
}

func TestAggregateSkipsMalformedRecords(t *testing.T) {
	sales := append(sampleSales(),
		domain.Sale{Timestamp: "not-a-date", Total: 999},
		domain.Sale{Timestamp: "", Total: 999},
	)

	res := Aggregate(sales, sampleProducts(), testOptions(PeriodAll))
	assert.Equal(t, 350.0, res.Total)
	assert.Equal(t, 3, res.Count)
}

func TestAggregateEmptyInput(t *testing.T) {
	res := Aggregate(nil, nil, testOptions(PeriodAll))
	assert.Zero(t, res.Total)
	assert.Zero(t, res.Profit)
	assert.Zero(t, res.Count)
	assert.Zero(t, res.Margin)
	assert.Empty(t, res.ByDay)
	assert.Empty(t, res.TopProducts)
}

func TestAggregateIsIdempotent(t *testing.T) {
	sales := sampleSales()
	products := sampleProducts()
	opts := testOptions(PeriodMonth)

	first := Aggregate(sales, products, opts)
	second := Aggregate(sales, products, opts)
	require.Equal(t, first, second)
}

func TestAggregateFallsBackToSubtotal(t *testing.T) {
	sales := []domain.Sale{
		{Timestamp: "2024-06-15T09:00:00+03:00", Subtotal: 75},
	}
	res := Aggregate(sales, nil, testOptions(PeriodDay))
	assert.Equal(t, 75.0, res.Total)
}

func TestAggregateHourBuckets(t *testing.T) {
	res := Aggregate(sampleSales(), sampleProducts(), testOptions(PeriodAll))

	morning, ok := res.ByHour["9:00"]
	require.True(t, ok)
	assert.Equal(t, 100.0, morning.Sales)
	assert.Equal(t, 1, morning.Count)

	evening, ok := res.ByHour["18:00"]
	require.True(t, ok)
	assert.Equal(t, 50.0, evening.Sales)
}

func TestAggregateCategoryResolution(t *testing.T) {
	sales := sampleSales()
	// An item nobody can resolve goes to Uncategorized.
	sales = append(sales, domain.Sale{
		Timestamp: "2024-06-15T11:00:00+03:00",
		Total:     30, Subtotal: 30,
		Items: []domain.SaleItem{
			{ProductID: "ghost", ProductName: "Mystery", Quantity: 1, Subtotal: 30},
		},
	})

	res := Aggregate(sales, sampleProducts(), testOptions(PeriodAll))
	assert.Equal(t, 300.0, res.ByCategory["Drinks"])
	assert.Equal(t, 50.0, res.ByCategory["Bakery"])
	assert.Equal(t, 30.0, res.ByCategory["Uncategorized"])
}

func TestAggregateTopProductsRankedByQuantity(t *testing.T) {
	res := Aggregate(sampleSales(), sampleProducts(), testOptions(PeriodAll))

	require.Len(t, res.TopProducts, 2)
	assert.Equal(t, "Soda", res.TopProducts[0].Name)
	assert.Equal(t, 12.0, res.TopProducts[0].Quantity)
	assert.Equal(t, "Bread", res.TopProducts[1].Name)
}

func TestAggregateTopProductsStableTies(t *testing.T) {
	sales := []domain.Sale{
		{
			Timestamp: "2024-06-15T09:00:00+03:00",
			Items: []domain.SaleItem{
				{ProductID: "a", ProductName: "Alpha", Quantity: 3},
				{ProductID: "b", ProductName: "Beta", Quantity: 3},
			},
		},
	}
	res := Aggregate(sales, nil, testOptions(PeriodAll))
	require.Len(t, res.TopProducts, 2)
	assert.Equal(t, "Alpha", res.TopProducts[0].Name)
	assert.Equal(t, "Beta", res.TopProducts[1].Name)
}

func TestAggregateUserFilter(t *testing.T) {
	sales := []domain.Sale{
		{Timestamp: "2024-06-15T09:00:00+03:00", Total: 100, UserID: "u1"},
		{Timestamp: "2024-06-15T10:00:00+03:00", Total: 40, UserID: "u2"},
	}
	opts := testOptions(PeriodDay)
	opts.UserID = "u1"
	res := Aggregate(sales, nil, opts)
	assert.Equal(t, 100.0, res.Total)
	assert.Equal(t, 1, res.Count)
}

func TestAggregateExpensesByPeriod(t *testing.T) {
	expenses := []domain.Expense{
		{Date: "2024-06-15", Amount: 500, Category: "Rent", Status: "paid"},
		{Date: "2024-06-10", Amount: 120, Category: "Transport", Status: "paid"},
		{Date: "2024-05-20", Amount: 999, Category: "Rent", Status: "paid"},
		{Date: "bad-date", Amount: 999},
	}

	month := AggregateExpenses(expenses, testOptions(PeriodMonth))
	assert.Equal(t, 620.0, month.Total)
	assert.Equal(t, 2, month.Count)
	assert.Equal(t, 500.0, month.ByCategory["Rent"])

	day := AggregateExpenses(expenses, testOptions(PeriodDay))
	assert.Equal(t, 500.0, day.Total)

	all := AggregateExpenses(expenses, testOptions(PeriodAll))
	assert.Equal(t, 1619.0, all.Total)
	assert.Equal(t, 3, all.Count)
}

func TestAggregateExpensesEmptyInput(t *testing.T) {
	res := AggregateExpenses(nil, testOptions(PeriodMonth))
	assert.Zero(t, res.Total)
	assert.Zero(t, res.Average)
	assert.Empty(t, res.ByCategory)
}

func TestMarginGuardsZeroDenominator(t *testing.T) {
	assert.Zero(t, Margin(50, 0))
	assert.InDelta(t, 20.0, Margin(20, 100), 1e-9)
}
