package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"
	"parksync-service/pkg/logger"
	"parksync-service/pkg/metrics"
)

// HistoryRecorder appends history snapshots with strict change detection:
// a snapshot is written only when it differs from the latest one for the
// same key. After an insert it deactivates every other row for the key so
// exactly one row stays active.
type HistoryRecorder struct {
	waitTimeRepo          repository.WaitTimeRepository
	parkStatusHistoryRepo repository.ParkStatusHistoryRepository
	attractionHistoryRepo repository.AttractionHistoryRepository
	restaurantHistoryRepo repository.RestaurantHistoryRepository
	purchaseHistoryRepo   repository.PurchaseHistoryRepository
	attractionRepo        repository.AttractionRepository
	logger                logger.Logger
	metrics               *metrics.Metrics
}

// NewHistoryRecorder creates a new history recorder
func NewHistoryRecorder(
	waitTimeRepo repository.WaitTimeRepository,
	parkStatusHistoryRepo repository.ParkStatusHistoryRepository,
	attractionHistoryRepo repository.AttractionHistoryRepository,
	restaurantHistoryRepo repository.RestaurantHistoryRepository,
	purchaseHistoryRepo repository.PurchaseHistoryRepository,
	attractionRepo repository.AttractionRepository,
	log logger.Logger,
	m *metrics.Metrics,
) *HistoryRecorder {
	return &HistoryRecorder{
		waitTimeRepo:          waitTimeRepo,
		parkStatusHistoryRepo: parkStatusHistoryRepo,
		attractionHistoryRepo: attractionHistoryRepo,
		restaurantHistoryRepo: restaurantHistoryRepo,
		purchaseHistoryRepo:   purchaseHistoryRepo,
		attractionRepo:        attractionRepo,
		logger:                log,
		metrics:               m,
	}
}

// RecordWaitTime appends a wait-time observation for (attraction, queue)
// unless both minutes and status match the latest row. Returns whether a
// row was written.
func (h *HistoryRecorder) RecordWaitTime(ctx context.Context, attractionID string, queueType entity.QueueType, minutes *int, status entity.OperatingStatus) (bool, error) {
	latest, err := h.waitTimeRepo.FindLatest(ctx, attractionID, queueType)
	if err != nil {
		return false, errors.Wrap(err, "find latest wait time")
	}

	if latest != nil && intPtrEqual(latest.WaitTimeMinutes, minutes) && latest.Status == status {
		return false, nil
	}

	row := &entity.WaitTime{
		ID:              uuid.NewString(),
		AttractionID:    attractionID,
		WaitTimeMinutes: minutes,
		QueueType:       queueType,
		Status:          status,
		IsActive:        true,
		RecordedAt:      time.Now().UTC(),
	}
	if err := h.waitTimeRepo.Insert(ctx, row); err != nil {
		return false, errors.Wrap(err, "insert wait time")
	}
	if err := h.waitTimeRepo.DeactivateOthers(ctx, attractionID, queueType, row.ID); err != nil {
		return false, errors.Wrap(err, "deactivate old wait times")
	}

	h.metrics.HistoryRecorded.WithLabelValues("wait_times").Inc()
	return true, nil
}

// RecordParkStatus snapshots a park's operating state together with wait
// metrics computed across its attractions. A snapshot is written only when
// the status or capacity flag changed; the computed metrics alone never
// trigger a new row.
func (h *HistoryRecorder) RecordParkStatus(ctx context.Context, park *entity.Park) (bool, error) {
	latest, err := h.parkStatusHistoryRepo.FindLatest(ctx, park.ID)
	if err != nil {
		return false, errors.Wrap(err, "find latest park status")
	}

	if latest != nil && latest.OperatingStatus == park.OperatingStatus && latest.IsAtCapacity == park.IsAtCapacity {
		return false, nil
	}

	row := &entity.ParkStatusHistory{
		ID:              uuid.NewString(),
		ParkID:          park.ID,
		OperatingStatus: park.OperatingStatus,
		IsAtCapacity:    park.IsAtCapacity,
		IsActive:        true,
		RecordedAt:      time.Now().UTC(),
	}

	// Metrics are best effort; a snapshot without them is still worth having.
	if stats, err := h.waitTimeRepo.ActiveStatsForPark(ctx, park.ID); err == nil {
		row.AvgWaitTime = stats.AvgMinutes
		row.MaxWaitTime = stats.MaxMinutes
	} else {
		h.logger.Warn("Failed to compute wait stats for park status snapshot", "parkId", park.ID, "error", err.Error())
	}
	if open, closed, err := h.attractionRepo.CountByStatus(ctx, park.ID); err == nil {
		row.TotalAttractionsOpen = &open
		row.TotalAttractionsClosed = &closed
	} else {
		h.logger.Warn("Failed to count attractions for park status snapshot", "parkId", park.ID, "error", err.Error())
	}

	if err := h.parkStatusHistoryRepo.Insert(ctx, row); err != nil {
		return false, errors.Wrap(err, "insert park status history")
	}
	if err := h.parkStatusHistoryRepo.DeactivateOthers(ctx, park.ID, row.ID); err != nil {
		return false, errors.Wrap(err, "deactivate old park status history")
	}

	h.metrics.HistoryRecorded.WithLabelValues("park_status_history").Inc()
	return true, nil
}

// RecordAttractionSnapshot snapshots an attraction's status unless nothing
// changed since the latest snapshot.
func (h *HistoryRecorder) RecordAttractionSnapshot(ctx context.Context, attraction *entity.Attraction) (bool, error) {
	latest, err := h.attractionHistoryRepo.FindLatest(ctx, attraction.ID)
	if err != nil {
		return false, errors.Wrap(err, "find latest attraction history")
	}

	if latest != nil &&
		statusPtrEqual(latest.Status, attraction.Status) &&
		latest.IsActiveAttraction == attraction.IsActive {
		return false, nil
	}

	row := &entity.AttractionHistory{
		ID:                 uuid.NewString(),
		AttractionID:       attraction.ID,
		Name:               attraction.Name,
		EntityType:         attraction.EntityType,
		Status:             attraction.Status,
		Latitude:           attraction.Latitude,
		Longitude:          attraction.Longitude,
		IsActiveAttraction: attraction.IsActive,
		IsActive:           true,
		RecordedAt:         time.Now().UTC(),
	}
	if err := h.attractionHistoryRepo.Insert(ctx, row); err != nil {
		return false, errors.Wrap(err, "insert attraction history")
	}
	if err := h.attractionHistoryRepo.DeactivateOthers(ctx, attraction.ID, row.ID); err != nil {
		return false, errors.Wrap(err, "deactivate old attraction history")
	}

	h.metrics.HistoryRecorded.WithLabelValues("attraction_history").Inc()
	return true, nil
}

// RecordRestaurantSnapshot snapshots a restaurant's availability unless
// nothing changed since the latest snapshot.
func (h *HistoryRecorder) RecordRestaurantSnapshot(ctx context.Context, restaurant *entity.Restaurant) (bool, error) {
	latest, err := h.restaurantHistoryRepo.FindLatest(ctx, restaurant.ID)
	if err != nil {
		return false, errors.Wrap(err, "find latest restaurant history")
	}

	if latest != nil &&
		latest.AvailabilityStatus == restaurant.AvailabilityStatus &&
		latest.AcceptsReservations == restaurant.AcceptsReservations &&
		latest.IsActiveRestaurant == restaurant.IsActive {
		return false, nil
	}

	row := &entity.RestaurantHistory{
		ID:                  uuid.NewString(),
		RestaurantID:        restaurant.ID,
		Name:                restaurant.Name,
		Latitude:            restaurant.Latitude,
		Longitude:           restaurant.Longitude,
		AvailabilityStatus:  restaurant.AvailabilityStatus,
		AcceptsReservations: restaurant.AcceptsReservations,
		IsActiveRestaurant:  restaurant.IsActive,
		IsActive:            true,
		RecordedAt:          time.Now().UTC(),
	}
	if err := h.restaurantHistoryRepo.Insert(ctx, row); err != nil {
		return false, errors.Wrap(err, "insert restaurant history")
	}
	if err := h.restaurantHistoryRepo.DeactivateOthers(ctx, restaurant.ID, row.ID); err != nil {
		return false, errors.Wrap(err, "deactivate old restaurant history")
	}

	h.metrics.HistoryRecorded.WithLabelValues("restaurant_history").Inc()
	return true, nil
}

// RecordPurchaseSnapshot snapshots a purchase's price and availability
// unless nothing changed since the latest snapshot.
func (h *HistoryRecorder) RecordPurchaseSnapshot(ctx context.Context, purchase *entity.Purchase) (bool, error) {
	latest, err := h.purchaseHistoryRepo.FindLatest(ctx, purchase.ID)
	if err != nil {
		return false, errors.Wrap(err, "find latest purchase history")
	}

	if latest != nil &&
		intPtrEqual(latest.PriceAmount, purchase.PriceAmount) &&
		latest.Available == purchase.Available {
		return false, nil
	}

	row := &entity.PurchaseHistory{
		ID:             uuid.NewString(),
		PurchaseID:     purchase.ID,
		Name:           purchase.Name,
		Type:           purchase.Type,
		PriceAmount:    purchase.PriceAmount,
		PriceCurrency:  purchase.PriceCurrency,
		PriceFormatted: purchase.PriceFormatted,
		Available:      purchase.Available,
		IsActive:       true,
		RecordedAt:     time.Now().UTC(),
	}
	if err := h.purchaseHistoryRepo.Insert(ctx, row); err != nil {
		return false, errors.Wrap(err, "insert purchase history")
	}
	if err := h.purchaseHistoryRepo.DeactivateOthers(ctx, purchase.ID, row.ID); err != nil {
		return false, errors.Wrap(err, "deactivate old purchase history")
	}

	h.metrics.HistoryRecorded.WithLabelValues("purchase_history").Inc()
	return true, nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func statusPtrEqual(a, b *entity.OperatingStatus) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
