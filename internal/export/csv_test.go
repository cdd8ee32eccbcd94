package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/report"
)

func sampleResult() *report.Result {
	return &report.Result{
		Total:          350,
		Profit:         65,
		Count:          3,
		AvgTransaction: 116.66666666666667,
		Margin:         18.571428571428573,
		ByDay: map[string]float64{
			"2024-06-15": 100,
			"2024-06-01": 200,
			"2024-06-14": 50,
		},
		TopProducts: []report.ProductTotals{
			{Name: "Soda", Quantity: 10, Revenue: 250, Profit: 50},
			{Name: "Bread", Quantity: 2, Revenue: 100, Profit: 15},
		},
	}
}

func TestSalesCSV(t *testing.T) {
	out, err := SalesCSV(sampleResult(), "KSH")
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Total Sales (KSH),350.00")
	assert.Contains(t, text, "Transactions,3")
	assert.Contains(t, text, "Profit Margin (%),18.57")

	// Daily rows come out in date order.
	first := strings.Index(text, "2024-06-01")
	last := strings.Index(text, "2024-06-15")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, last, 0)
	assert.Less(t, first, last)
}

func TestProductsCSV(t *testing.T) {
	out, err := ProductsCSV(sampleResult(), "KSH")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Revenue (KSH)")
	assert.Contains(t, lines[1], "Soda")
	assert.Contains(t, lines[2], "Bread")
}

func TestSalesXLSX(t *testing.T) {
	out, err := SalesXLSX(sampleResult(), "KSH")
	require.NoError(t, err)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}
