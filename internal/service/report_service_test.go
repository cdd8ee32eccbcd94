package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/config"
	"github.com/nerdware-developers/pos-backend/internal/domain"
)

func testReportService() *ReportService {
	sales := &stubSalesRepo{created: []domain.Sale{
		{
			ID:        "s1",
			Timestamp: "2024-06-15T09:30:00+03:00",
			Total:     100, Subtotal: 100, Profit: 20,
			Items: []domain.SaleItem{
				{ProductID: "p1", ProductName: "Soda", Quantity: 4, Price: 25, Subtotal: 100, Profit: 20},
			},
		},
	}}
	products := &stubProductRepo{byID: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Soda", Category: "Drinks", Price: 25, BuyingPrice: 20, Stock: 40},
	}}
	expenses := &stubExpenseRepo{byID: map[string]domain.Expense{}}
	cfg := config.ReportConfig{Currency: "KSH", Timezone: "Africa/Nairobi", TopN: 10}
	return NewReportService(sales, products, expenses, cache.NewNoopReportCache(), nil, cfg)
}

func TestExportFileFormats(t *testing.T) {
	svc := testReportService()
	ctx := context.Background()

	name, contentType, payload, url, err := svc.ExportFile(ctx, "all", "", "csv")
	require.NoError(t, err)
	assert.Contains(t, name, "sales-report-all-")
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Total Sales (KSH)")
	assert.Empty(t, url)

	name, contentType, payload, _, err = svc.ExportFile(ctx, "all", "", "xlsx")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	assert.NotEmpty(t, payload)
}

func TestExportFileProductsCSV(t *testing.T) {
	svc := testReportService()

	name, contentType, payload, _, err := svc.ExportFile(context.Background(), "all", "", "products-csv")
	require.NoError(t, err)
	assert.Contains(t, name, "products-report-all-")
	assert.Equal(t, "text/csv", contentType)

	body := string(payload)
	assert.Contains(t, body, "Product,Quantity Sold")
	assert.Contains(t, body, "Soda,4")
}
