// The sync command runs the sheet reconciliation as a standalone
// worker, for deployments that keep the API server and the sync loop
// on separate machines. A small admin endpoint triggers an immediate
// pull.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/nerdware-developers/pos-backend/internal/cache"
	"github.com/nerdware-developers/pos-backend/internal/config"
	"github.com/nerdware-developers/pos-backend/internal/repository/postgres"
	"github.com/nerdware-developers/pos-backend/internal/repository/sheets"
	"github.com/nerdware-developers/pos-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		loc = time.Local
	}

	sheetClient, err := sheets.NewClient(ctx, &cfg.Sheets)
	if err != nil {
		log.Fatalf("Failed to initialize sheets client: %v", err)
	}

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		log.Printf("warning: report cache unavailable: %v", err)
		reportCache = cache.NewNoopReportCache()
	}

	salesRepo := postgres.NewSalesRepository(db, loc)
	productRepo := postgres.NewProductRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)

	syncService := service.NewSyncService(sheetClient, salesRepo, productRepo, expenseRepo, reportCache)

	go syncService.Run(ctx, time.Duration(cfg.Sheets.SyncInterval)*time.Second)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		if err := syncService.SyncOnce(r.Context()); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "synced"})
	}).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Printf("Sync worker listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
