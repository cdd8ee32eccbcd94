// Package export renders report results into downloadable files. The
// old UI built CSV strings in the browser; here the server produces
// the same shape plus an XLSX variant.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/nerdware-developers/pos-backend/internal/report"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SalesCSV renders the aggregate result as a two-section CSV: summary
// figures first, then the per-day breakdown in date order.
func SalesCSV(result *report.Result, currency string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{fmt.Sprintf("Total Sales (%s)", currency), money(result.Total)},
		{fmt.Sprintf("Total Profit (%s)", currency), money(result.Profit)},
		{"Transactions", strconv.Itoa(result.Count)},
		{fmt.Sprintf("Average Transaction (%s)", currency), money(result.AvgTransaction)},
		{"Profit Margin (%)", money(result.Margin)},
		{},
		{"Date", fmt.Sprintf("Sales (%s)", currency)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	days := make([]string, 0, len(result.ByDay))
	for day := range result.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if err := w.Write([]string{day, money(result.ByDay[day])}); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ProductsCSV renders the ranked product table.
func ProductsCSV(result *report.Result, currency string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Product", "Quantity Sold", fmt.Sprintf("Revenue (%s)", currency),
		fmt.Sprintf("Profit (%s)", currency)}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range result.TopProducts {
		row := []string{p.Name, strconv.FormatFloat(p.Quantity, 'f', -1, 64),
			money(p.Revenue), money(p.Profit)}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
