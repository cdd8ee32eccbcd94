package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/nerdware-developers/pos-backend/internal/report"
)

// SalesXLSX builds a workbook with a summary sheet, a daily breakdown
// and the ranked product table.
func SalesXLSX(result *report.Result, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	f.SetCellValue(summary, "A1", "Metric")
	f.SetCellValue(summary, "B1", "Value")
	summaryRows := []struct {
		label string
		value interface{}
	}{
		{fmt.Sprintf("Total Sales (%s)", currency), result.Total},
		{fmt.Sprintf("Total Profit (%s)", currency), result.Profit},
		{"Transactions", result.Count},
		{fmt.Sprintf("Average Transaction (%s)", currency), result.AvgTransaction},
		{"Profit Margin (%)", result.Margin},
	}
	for i, row := range summaryRows {
		f.SetCellValue(summary, "A"+fmt.Sprint(i+2), row.label)
		f.SetCellValue(summary, "B"+fmt.Sprint(i+2), row.value)
	}

	const daily = "Daily"
	if _, err := f.NewSheet(daily); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	f.SetCellValue(daily, "A1", "Date")
	f.SetCellValue(daily, "B1", fmt.Sprintf("Sales (%s)", currency))

	days := make([]string, 0, len(result.ByDay))
	for day := range result.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for i, day := range days {
		f.SetCellValue(daily, "A"+fmt.Sprint(i+2), day)
		f.SetCellValue(daily, "B"+fmt.Sprint(i+2), result.ByDay[day])
	}

	const products = "Products"
	if _, err := f.NewSheet(products); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	f.SetCellValue(products, "A1", "Product")
	f.SetCellValue(products, "B1", "Quantity Sold")
	f.SetCellValue(products, "C1", fmt.Sprintf("Revenue (%s)", currency))
	f.SetCellValue(products, "D1", fmt.Sprintf("Profit (%s)", currency))
	for i, p := range result.TopProducts {
		f.SetCellValue(products, "A"+fmt.Sprint(i+2), p.Name)
		f.SetCellValue(products, "B"+fmt.Sprint(i+2), p.Quantity)
		f.SetCellValue(products, "C"+fmt.Sprint(i+2), p.Revenue)
		f.SetCellValue(products, "D"+fmt.Sprint(i+2), p.Profit)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
