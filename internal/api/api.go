package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/api/handlers"
	"github.com/nerdware-developers/pos-backend/internal/api/middleware"
	"github.com/nerdware-developers/pos-backend/internal/service"
	"github.com/nerdware-developers/pos-backend/internal/settings"
)

type Services struct {
	ReportService  *service.ReportService
	SalesService   *service.SalesService
	ProductService *service.ProductService
	ExpenseService *service.ExpenseService
	ClosingService *service.ClosingService
	TargetService  *service.TargetService
	Settings       settings.Store
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Export-URL"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.ReportService != nil {
		reportsHandler := handlers.NewReportsHandler(services.ReportService)
		reportsGroup := apiGroup.Group("/reports")
		{
			reportsGroup.GET("/sales", reportsHandler.GetSales)
			reportsGroup.GET("/dashboard", reportsHandler.GetDashboard)
			reportsGroup.GET("/advanced", reportsHandler.GetAdvanced)
			reportsGroup.GET("/summary", reportsHandler.GetSummary)
			reportsGroup.GET("/export", reportsHandler.Export)
		}
	}

	if services.SalesService != nil {
		salesHandler := handlers.NewSalesHandler(services.SalesService)
		salesGroup := apiGroup.Group("/sales")
		{
			salesGroup.POST("", salesHandler.Create)
			salesGroup.GET("", salesHandler.List)
			salesGroup.GET("/:id", salesHandler.GetByID)
		}
	}

	if services.ProductService != nil {
		productsHandler := handlers.NewProductsHandler(services.ProductService)
		productsGroup := apiGroup.Group("/products")
		{
			productsGroup.GET("", productsHandler.List)
			productsGroup.POST("", productsHandler.Create)
			productsGroup.GET("/low-stock", productsHandler.LowStock)
			productsGroup.GET("/valuation", productsHandler.Valuation)
			productsGroup.GET("/:id", productsHandler.GetByID)
			productsGroup.PUT("/:id", productsHandler.Update)
			productsGroup.DELETE("/:id", productsHandler.Delete)
		}
	}

	if services.ExpenseService != nil {
		expensesHandler := handlers.NewExpensesHandler(services.ExpenseService)
		expensesGroup := apiGroup.Group("/expenses")
		{
			expensesGroup.GET("", expensesHandler.List)
			expensesGroup.POST("", expensesHandler.Create)
			expensesGroup.GET("/analytics", expensesHandler.Analytics)
			expensesGroup.PUT("/:id", expensesHandler.Update)
			expensesGroup.DELETE("/:id", expensesHandler.Delete)
		}
	}

	if services.ClosingService != nil {
		closingsHandler := handlers.NewClosingsHandler(services.ClosingService)
		closingsGroup := apiGroup.Group("/closings")
		{
			closingsGroup.POST("", closingsHandler.Upsert)
			closingsGroup.GET("", closingsHandler.List)
			closingsGroup.GET("/:date", closingsHandler.GetByDate)
			closingsGroup.GET("/:date/variance", closingsHandler.Variance)
		}
	}

	if services.TargetService != nil {
		targetsHandler := handlers.NewTargetsHandler(services.TargetService)
		targetsGroup := apiGroup.Group("/targets")
		{
			targetsGroup.GET("", targetsHandler.List)
			targetsGroup.POST("", targetsHandler.Create)
			targetsGroup.PUT("/:id", targetsHandler.Update)
			targetsGroup.DELETE("/:id", targetsHandler.Delete)
		}
	}

	if services.Settings != nil {
		settingsHandler := handlers.NewSettingsHandler(services.Settings)
		settingsGroup := apiGroup.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.Get)
			settingsGroup.PUT("", settingsHandler.Save)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
