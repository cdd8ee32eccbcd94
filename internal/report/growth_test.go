package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

func TestPercentChangeGuardsNonPositiveBase(t *testing.T) {
	assert.Zero(t, PercentChange(100, 0))
	assert.Zero(t, PercentChange(100, -5))
	assert.Zero(t, PercentChange(0, 0))
}

func TestPercentChangeRoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 50.0, PercentChange(150, 100))
	assert.Equal(t, -66.7, PercentChange(1, 3))
	assert.Equal(t, 33.3, PercentChange(4, 3))
}

func TestPreviousWindow(t *testing.T) {
	now := testNow() // 2024-06-15 12:00 +03:00

	dayStart, dayEnd := PreviousWindow(PeriodDay, now, nairobi)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, nairobi), dayStart)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, nairobi), dayEnd)

	monthStart, monthEnd := PreviousWindow(PeriodMonth, now, nairobi)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, nairobi), monthStart)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, nairobi), monthEnd)

	weekStart, weekEnd := PreviousWindow(PeriodWeek, now, nairobi)
	assert.Equal(t, now.AddDate(0, 0, -14).In(nairobi), weekStart)
	assert.Equal(t, now.AddDate(0, 0, -7).In(nairobi), weekEnd)
}

func TestSalesGrowthWeekOverWeek(t *testing.T) {
	sales := []domain.Sale{
		// Current week: 150.
		{Timestamp: "2024-06-14T10:00:00+03:00", Total: 100},
		{Timestamp: "2024-06-12T10:00:00+03:00", Total: 50},
		// Previous week: 100.
		{Timestamp: "2024-06-05T10:00:00+03:00", Total: 100},
	}

	growth := SalesGrowth(sales, testOptions(PeriodWeek))
	assert.Equal(t, 50.0, growth)
}

func TestSalesGrowthZeroBase(t *testing.T) {
	sales := []domain.Sale{
		{Timestamp: "2024-06-14T10:00:00+03:00", Total: 100},
	}
	assert.Zero(t, SalesGrowth(sales, testOptions(PeriodWeek)))
	assert.Zero(t, SalesGrowth(sales, testOptions(PeriodAll)))
}
