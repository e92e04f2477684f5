package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parksync-service/internal/infrastructure/config"
	"parksync-service/internal/infrastructure/persistence"
	"parksync-service/internal/infrastructure/scheduler"
	"parksync-service/internal/interface/docs"
	"parksync-service/internal/interface/geocode"
	gormRepo "parksync-service/internal/interface/repository"
	"parksync-service/internal/interface/themeparks"
	"parksync-service/internal/usecase"
	"parksync-service/pkg/logger"
	"parksync-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Parksync Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	m := metrics.NewMetrics("parksync")

	// Set up repositories
	parkGroupRepo := gormRepo.NewGormParkGroupRepository(db)
	parkRepo := gormRepo.NewGormParkRepository(db)
	attractionRepo := gormRepo.NewGormAttractionRepository(db)
	restaurantRepo := gormRepo.NewGormRestaurantRepository(db)
	showTimeRepo := gormRepo.NewGormShowTimeRepository(db)
	parkScheduleRepo := gormRepo.NewGormParkScheduleRepository(db)
	purchaseRepo := gormRepo.NewGormPurchaseRepository(db)
	waitTimeRepo := gormRepo.NewGormWaitTimeRepository(db)
	parkStatusHistoryRepo := gormRepo.NewGormParkStatusHistoryRepository(db)
	attractionHistoryRepo := gormRepo.NewGormAttractionHistoryRepository(db)
	restaurantHistoryRepo := gormRepo.NewGormRestaurantHistoryRepository(db)
	purchaseHistoryRepo := gormRepo.NewGormPurchaseHistoryRepository(db)

	// Upstream client and geocoding chain
	client := themeparks.NewClient(cfg.ThemeParksBaseURL, cfg.HTTPTimeout, log)
	resolver := geocode.NewChainResolver(log,
		geocode.NewBigDataCloudResolver(cfg.HTTPTimeout),
		geocode.NewNominatimResolver("parksync-service/"+cfg.AppVersion, cfg.HTTPTimeout),
	)

	recorder := usecase.NewHistoryRecorder(
		waitTimeRepo,
		parkStatusHistoryRepo,
		attractionHistoryRepo,
		restaurantHistoryRepo,
		purchaseHistoryRepo,
		attractionRepo,
		log,
		m,
	)

	syncService := usecase.NewSyncService(
		client,
		parkGroupRepo,
		parkRepo,
		attractionRepo,
		restaurantRepo,
		showTimeRepo,
		parkScheduleRepo,
		purchaseRepo,
		recorder,
		resolver,
		cfg.GeocodeBatchSize,
		cfg.GeocodeBatchDelay,
		log,
		m,
	)

	// Schedule the sync jobs
	scheduler.Every(ctx, log, "full_sync", cfg.FullSyncInterval, true, syncService.SyncAll)
	scheduler.Every(ctx, log, "park_status", cfg.ParkStatusInterval, false, syncService.SyncParkStatus)
	scheduler.Every(ctx, log, "wait_times", cfg.WaitTimeInterval, false, syncService.SyncWaitTimes)
	scheduler.Every(ctx, log, "attraction_status", cfg.AttractionStatusInterval, false, syncService.SyncAttractionStatus)
	scheduler.Every(ctx, log, "park_locations", cfg.LocationInterval, true, syncService.UpdateParkLocations)

	// HTTP surface: readme, health, metrics
	readme := docs.NewReadmeService("README.md")

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		page, err := readme.HTML()
		if err != nil {
			http.Error(w, "readme unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	})
	router.Get("/readme", func(w http.ResponseWriter, r *http.Request) {
		md, err := readme.Markdown()
		if err != nil {
			http.Error(w, "readme unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the schedulers

	log.Info("Parksync Service stopped")
}
