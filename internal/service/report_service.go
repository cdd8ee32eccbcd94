package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/config"
	"github.com/nerdware-developers/pos-backend/internal/domain"
	"github.com/nerdware-developers/pos-backend/internal/export"
	"github.com/nerdware-developers/pos-backend/internal/report"
	"github.com/nerdware-developers/pos-backend/internal/repository"
	"github.com/nerdware-developers/pos-backend/internal/storage"
)

// DashboardResponse is the single payload behind the dashboard screen.
// One snapshot of the data feeds every widget so the cards never
// disagree with the charts.
type DashboardResponse struct {
	Summary       report.Summary          `json:"summary"`
	Growth        float64                 `json:"growth"`
	SalesByDay    []report.ChartPoint     `json:"salesByDay"`
	SalesByHour   []report.HourRank       `json:"salesByHour"`
	TopProducts   []report.ProductRow     `json:"topProducts"`
	ByCategory    []report.ChartPoint     `json:"byCategory"`
	Valuation     report.StockValuation   `json:"valuation"`
	LowStock      []domain.Product        `json:"lowStock"`
	Expenses      report.ExpenseAnalytics `json:"expenses"`
	PeriodSummary report.PeriodSummary    `json:"periodSummary"`
}

// AdvancedResponse backs the advanced-reports screen.
type AdvancedResponse struct {
	Result    report.Result              `json:"result"`
	PeakHours []report.HourRank          `json:"peakHours"`
	Movement  map[string]report.Movement `json:"movement"`
	Growth    float64                    `json:"growth"`
}

type ReportService struct {
	sales    repository.SalesRepository
	products repository.ProductRepository
	expenses repository.ExpenseRepository
	cache    cache.ReportCache
	store    storage.ObjectStorage // nil when exports stay local
	cfg      config.ReportConfig
	loc      *time.Location
}

func NewReportService(
	sales repository.SalesRepository,
	products repository.ProductRepository,
	expenses repository.ExpenseRepository,
	reportCache cache.ReportCache,
	store storage.ObjectStorage,
	cfg config.ReportConfig,
) *ReportService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.Timezone).Msg("unknown timezone, falling back to local")
		loc = time.Local
	}
	return &ReportService{
		sales:    sales,
		products: products,
		expenses: expenses,
		cache:    reportCache,
		store:    store,
		cfg:      cfg,
		loc:      loc,
	}
}

func (s *ReportService) options(period, date, userID string) report.Options {
	return report.Options{
		Period:   report.Period(period),
		Date:     date,
		UserID:   userID,
		TopN:     s.cfg.TopN,
		Location: s.loc,
	}
}

func (s *ReportService) load(ctx context.Context) ([]domain.Sale, []domain.Product, []domain.Expense, error) {
	sales, err := s.sales.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load sales: %w", err)
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	expenses, err := s.expenses.List(ctx, domain.ExpenseFilter{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return sales, products, expenses, nil
}

// Sales runs the aggregation for one period, consulting the cache
// first. Cache failures degrade to a recompute, never to an error.
func (s *ReportService) Sales(ctx context.Context, period, date, userID string) (*report.Result, error) {
	opts := s.options(period, date, userID)

	if cached, ok, err := s.cache.Get(ctx, opts); err != nil {
		log.Warn().Err(err).Msg("report cache read failed")
	} else if ok {
		return cached, nil
	}

	sales, err := s.sales.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	result := report.Aggregate(sales, products, opts)
	if err := s.cache.Set(ctx, opts, &result); err != nil {
		log.Warn().Err(err).Msg("report cache write failed")
	}
	return &result, nil
}

// Dashboard assembles every widget of the dashboard from one data
// snapshot.
func (s *ReportService) Dashboard(ctx context.Context, period, date, userID string) (*DashboardResponse, error) {
	sales, products, expenses, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	opts := s.options(period, date, userID)
	result := report.Aggregate(sales, products, opts)
	expResult := report.AggregateExpenses(expenses, opts)

	return &DashboardResponse{
		Summary:       report.SummaryCards(result, expResult),
		Growth:        report.SalesGrowth(sales, opts),
		SalesByDay:    report.ChartSeries(result.ByDay),
		SalesByHour:   report.PeakHours(result, 24),
		TopProducts:   report.RankedRows(result),
		ByCategory:    report.ChartSeries(result.ByCategory),
		Valuation:     report.ValueStock(products),
		LowStock:      report.LowStock(products, s.cfg.LowStockThreshold),
		Expenses:      report.AnalyzeExpenses(expenses),
		PeriodSummary: report.DailyMonthlySummary(sales, time.Now(), s.loc),
	}, nil
}

// Advanced backs the advanced-reports screen: the full aggregate plus
// peak hours and the movement classification.
func (s *ReportService) Advanced(ctx context.Context, period, date, userID string) (*AdvancedResponse, error) {
	sales, products, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	opts := s.options(period, date, userID)
	result := report.Aggregate(sales, products, opts)

	return &AdvancedResponse{
		Result:    result,
		PeakHours: report.PeakHours(result, 5),
		Movement:  report.ClassifyMovement(products, sales, s.cfg.MovementWindow, time.Now(), s.loc),
		Growth:    report.SalesGrowth(sales, opts),
	}, nil
}

// Summary returns today's and this month's totals on local-date
// boundaries.
func (s *ReportService) Summary(ctx context.Context) (*report.PeriodSummary, error) {
	sales, err := s.sales.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	summary := report.DailyMonthlySummary(sales, time.Now(), s.loc)
	return &summary, nil
}

// ExportFile renders the current report as csv or xlsx, or the ranked
// product table as products-csv. When object
// storage is configured the file is also uploaded and a share link
// returned.
func (s *ReportService) ExportFile(ctx context.Context, period, date, format string) (string, string, []byte, string, error) {
	result, err := s.Sales(ctx, period, date, "")
	if err != nil {
		return "", "", nil, "", err
	}

	stamp := time.Now().In(s.loc).Format("2006-01-02")
	var (
		name        string
		contentType string
		payload     []byte
	)
	switch format {
	case "xlsx":
		name = fmt.Sprintf("sales-report-%s-%s.xlsx", period, stamp)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		payload, err = export.SalesXLSX(result, s.cfg.Currency)
	case "products-csv":
		name = fmt.Sprintf("products-report-%s-%s.csv", period, stamp)
		contentType = "text/csv"
		payload, err = export.ProductsCSV(result, s.cfg.Currency)
	default:
		name = fmt.Sprintf("sales-report-%s-%s.csv", period, stamp)
		contentType = "text/csv"
		payload, err = export.SalesCSV(result, s.cfg.Currency)
	}
	if err != nil {
		return "", "", nil, "", err
	}

	url := ""
	if s.store != nil {
		key := "exports/" + name
		if upErr := s.store.Upload(ctx, key, contentType, payload); upErr != nil {
			log.Warn().Err(upErr).Str("key", key).Msg("export upload failed")
		} else if link, linkErr := s.store.PresignedURL(ctx, key); linkErr == nil {
			url = link
		}
	}
	return name, contentType, payload, url, nil
}
