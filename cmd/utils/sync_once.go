package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"parksync-service/internal/infrastructure/config"
	"parksync-service/internal/infrastructure/persistence"
	"parksync-service/internal/interface/geocode"
	gormRepo "parksync-service/internal/interface/repository"
	"parksync-service/internal/interface/themeparks"
	"parksync-service/internal/usecase"
	"parksync-service/pkg/logger"
	"parksync-service/pkg/metrics"
)

// One-shot sync runner for operations and local development:
//
//	go run ./cmd/utils -job full
func main() {
	job := flag.String("job", "full", "job to run: full, park_status, wait_times, attraction_status, locations")
	flag.Parse()

	log := logger.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	db, err := persistence.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	m := metrics.NewMetrics("parksync")

	waitTimeRepo := gormRepo.NewGormWaitTimeRepository(db)
	attractionRepo := gormRepo.NewGormAttractionRepository(db)
	recorder := usecase.NewHistoryRecorder(
		waitTimeRepo,
		gormRepo.NewGormParkStatusHistoryRepository(db),
		gormRepo.NewGormAttractionHistoryRepository(db),
		gormRepo.NewGormRestaurantHistoryRepository(db),
		gormRepo.NewGormPurchaseHistoryRepository(db),
		attractionRepo,
		log,
		m,
	)

	client := themeparks.NewClient(cfg.ThemeParksBaseURL, cfg.HTTPTimeout, log)
	resolver := geocode.NewChainResolver(log,
		geocode.NewBigDataCloudResolver(cfg.HTTPTimeout),
		geocode.NewNominatimResolver("parksync-service/"+cfg.AppVersion, cfg.HTTPTimeout),
	)

	syncService := usecase.NewSyncService(
		client,
		gormRepo.NewGormParkGroupRepository(db),
		gormRepo.NewGormParkRepository(db),
		attractionRepo,
		gormRepo.NewGormRestaurantRepository(db),
		gormRepo.NewGormShowTimeRepository(db),
		gormRepo.NewGormParkScheduleRepository(db),
		gormRepo.NewGormPurchaseRepository(db),
		recorder,
		resolver,
		cfg.GeocodeBatchSize,
		cfg.GeocodeBatchDelay,
		log,
		m,
	)

	ctx := context.Background()

	switch *job {
	case "full":
		err = syncService.SyncAll(ctx)
	case "park_status":
		err = syncService.SyncParkStatus(ctx)
	case "wait_times":
		err = syncService.SyncWaitTimes(ctx)
	case "attraction_status":
		err = syncService.SyncAttractionStatus(ctx)
	case "locations":
		err = syncService.UpdateParkLocations(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown job %q\n", *job)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Sync failed", "job", *job, "error", err)
	}
	log.Info("Sync completed", "job", *job)
}
