package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nerdware-developers/pos-backend/internal/api"
	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/config"
	"github.com/nerdware-developers/pos-backend/internal/repository/postgres"
	"github.com/nerdware-developers/pos-backend/internal/repository/sheets"
	"github.com/nerdware-developers/pos-backend/internal/service"
	"github.com/nerdware-developers/pos-backend/internal/settings"
	"github.com/nerdware-developers/pos-backend/internal/storage"
	"github.com/nerdware-developers/pos-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		logger.Log.Warn().Str("timezone", cfg.Report.Timezone).Msg("unknown timezone, using local")
		loc = time.Local
	}

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, running without")
		reportCache = cache.NewNoopReportCache()
	}

	var store storage.ObjectStorage
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinioClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, exports stay local")
		} else {
			store = minioClient
		}
	}

	salesRepo := postgres.NewSalesRepository(db, loc)
	productRepo := postgres.NewProductRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	closingRepo := postgres.NewClosingRepository(db)
	targetRepo := postgres.NewTargetRepository(db)

	settingsStore := settings.NewMemoryStore()
	if cfg.Cache.Enabled {
		if redisClient, err := cache.NewClient(cfg.Cache); err != nil {
			logger.Log.Warn().Err(err).Msg("redis unavailable for settings, using memory store")
		} else {
			settingsStore = settings.NewRedisStore(redisClient)
		}
	}

	services := &api.Services{
		ReportService:  service.NewReportService(salesRepo, productRepo, expenseRepo, reportCache, store, cfg.Report),
		SalesService:   service.NewSalesService(salesRepo, reportCache),
		ProductService: service.NewProductService(productRepo, cfg.Report.LowStockThreshold),
		ExpenseService: service.NewExpenseService(expenseRepo, reportCache),
		ClosingService: service.NewClosingService(closingRepo, salesRepo, loc),
		TargetService:  service.NewTargetService(targetRepo, salesRepo, loc),
		Settings:       settingsStore,
	}

	// The sheet sync runs inside the server when configured, so a
	// single process covers the common single-shop deployment.
	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsJSON != "" {
		sheetClient, err := sheets.NewClient(ctx, &cfg.Sheets)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("sheets client unavailable, sync disabled")
		} else {
			syncService := service.NewSyncService(sheetClient, salesRepo, productRepo, expenseRepo, reportCache)
			go syncService.Run(ctx, time.Duration(cfg.Sheets.SyncInterval)*time.Second)
		}
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
