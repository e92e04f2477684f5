package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// WaitStats aggregates the currently active wait times of a park's
// attractions. Nil values mean no active observations exist.
type WaitStats struct {
	AvgMinutes *int
	MaxMinutes *int
}

// WaitTimeRepository defines the interface for wait-time observations.
// Rows are append-only; the bulk deactivate must exclude the row named by
// keepID so the insert-then-deactivate sequence leaves exactly one active
// row per (attraction, queue type).
type WaitTimeRepository interface {
	// FindLatest returns the newest row for the key, or nil when none exists.
	FindLatest(ctx context.Context, attractionID string, queueType entity.QueueType) (*entity.WaitTime, error)
	Insert(ctx context.Context, waitTime *entity.WaitTime) error
	DeactivateOthers(ctx context.Context, attractionID string, queueType entity.QueueType, keepID string) error
	// ActiveStatsForPark computes avg/max over the active rows of a park's
	// attractions, for park status snapshots.
	ActiveStatsForPark(ctx context.Context, parkID string) (WaitStats, error)
}
