package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

func TestChartSeriesEmptyInput(t *testing.T) {
	assert.Empty(t, ChartSeries(nil))
	assert.Empty(t, ChartSeries(map[string]float64{}))
}

func TestChartSeriesRelativeWidths(t *testing.T) {
	points := ChartSeries(map[string]float64{
		"2024-06-01": 50,
		"2024-06-02": 100,
	})
	require.Len(t, points, 2)
	assert.Equal(t, "2024-06-01", points[0].Label)
	assert.Equal(t, 50.0, points[0].Percent)
	assert.Equal(t, 100.0, points[1].Percent)
}

func TestChartSeriesAllZeroValues(t *testing.T) {
	points := ChartSeries(map[string]float64{"a": 0, "b": 0})
	require.Len(t, points, 2)
	assert.Zero(t, points[0].Percent)
}

func TestRankedRowsComputeMargin(t *testing.T) {
	res := Aggregate(sampleSales(), sampleProducts(), testOptions(PeriodAll))
	rows := RankedRows(res)
	require.Len(t, rows, 2)
	assert.Equal(t, "Soda", rows[0].Name)
	assert.InDelta(t, 20.0, rows[0].Margin, 1e-9) // 60 profit on 300 revenue
}

func TestSummaryCards(t *testing.T) {
	res := Aggregate(sampleSales(), sampleProducts(), testOptions(PeriodAll))
	exp := AggregateExpenses([]domain.Expense{
		{Date: "2024-06-10", Amount: 40, Category: "Transport"},
	}, testOptions(PeriodAll))

	cards := SummaryCards(res, exp)
	assert.Equal(t, 350.0, cards.TotalSales)
	assert.Equal(t, 65.0, cards.GrossProfit)
	assert.Equal(t, 40.0, cards.TotalExpenses)
	assert.Equal(t, 25.0, cards.NetProfit)
	assert.Equal(t, 3, cards.Transactions)
}

func TestSummaryCardsEmptyInputsAllZero(t *testing.T) {
	cards := SummaryCards(Aggregate(nil, nil, testOptions(PeriodAll)), AggregateExpenses(nil, testOptions(PeriodAll)))
	assert.Zero(t, cards.TotalSales)
	assert.Zero(t, cards.NetProfit)
	assert.Zero(t, cards.AvgTransaction)
	assert.Zero(t, cards.Margin)
}

func TestPeakHours(t *testing.T) {
	res := Aggregate(sampleSales(), sampleProducts(), testOptions(PeriodAll))
	hours := PeakHours(res, 1)
	require.Len(t, hours, 1)
	assert.Equal(t, "9:00", hours[0].Hour)
	assert.Equal(t, 100.0, hours[0].Sales)
}

func TestDailyMonthlySummaryLocalBoundaries(t *testing.T) {
	sales := []domain.Sale{
		// 23:50 local yesterday; must not count as today.
		{Timestamp: "2024-06-14T23:50:00+03:00", Total: 80, Profit: 10},
		{Timestamp: "2024-06-15T08:00:00+03:00", Total: 100, Profit: 20},
		{Timestamp: "2024-05-30T10:00:00+03:00", Total: 999, Profit: 99},
	}

	s := DailyMonthlySummary(sales, testNow(), nairobi)
	assert.Equal(t, 100.0, s.DailySales)
	assert.Equal(t, 20.0, s.DailyProfit)
	assert.Equal(t, 180.0, s.MonthlySales)
	assert.Equal(t, 30.0, s.MonthlyProfit)
}

func TestValueStock(t *testing.T) {
	v := ValueStock(sampleProducts())
	// 40*20 + 5*45 cost, 40*25 + 5*50 retail.
	assert.Equal(t, 1025.0, v.TotalCostValue)
	assert.Equal(t, 1250.0, v.TotalRetailValue)
	assert.Equal(t, 225.0, v.TotalProfit)
	assert.Equal(t, 2, v.TotalProducts)
	assert.Equal(t, 45, v.TotalStock)
}

func TestLowStock(t *testing.T) {
	low := LowStock(sampleProducts(), 10)
	require.Len(t, low, 1)
	assert.Equal(t, "Bread", low[0].Name)
}

func TestAnalyzeExpenses(t *testing.T) {
	a := AnalyzeExpenses([]domain.Expense{
		{Category: "Rent", Amount: 300, Status: "paid"},
		{Category: "Rent", Amount: 100, Status: "pending"},
		{Category: "Transport", Amount: 100, Status: "paid"},
	})

	assert.Equal(t, 500.0, a.TotalExpenses)
	assert.InDelta(t, 166.67, a.AverageExpense, 0.01)
	assert.Equal(t, 1, a.PendingCount)
	require.Len(t, a.CategoryBreakdown, 2)
	assert.Equal(t, "Rent", a.CategoryBreakdown[0].Category)
	assert.InDelta(t, 80.0, a.CategoryBreakdown[0].Percentage, 1e-9)
}

func TestTargetProgress(t *testing.T) {
	target := domain.SalesTarget{
		Type:         "weekly",
		TargetAmount: 200,
		StartDate:    "2024-06-10",
		EndDate:      "2024-06-16",
	}
	sales := []domain.Sale{
		{Timestamp: "2024-06-14T10:00:00+03:00", Total: 100},
		{Timestamp: "2024-06-16T23:30:00+03:00", Total: 150}, // end date inclusive
		{Timestamp: "2024-06-17T01:00:00+03:00", Total: 999},
	}

	current, progress := TargetProgress(target, sales, nairobi)
	assert.Equal(t, 250.0, current)
	assert.Equal(t, 100.0, progress) // capped
}
