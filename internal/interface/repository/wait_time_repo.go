package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormWaitTimeRepository implements the WaitTimeRepository interface
type GormWaitTimeRepository struct {
	db *gorm.DB
}

// NewGormWaitTimeRepository creates a new GORM wait-time repository
func NewGormWaitTimeRepository(db *gorm.DB) repository.WaitTimeRepository {
	return &GormWaitTimeRepository{
		db: db,
	}
}

// FindLatest returns the newest observation for the key, or nil when none
func (r *GormWaitTimeRepository) FindLatest(ctx context.Context, attractionID string, queueType entity.QueueType) (*entity.WaitTime, error) {
	var waitTime entity.WaitTime
	err := r.db.WithContext(ctx).
		Where("attraction_id = ? AND queue_type = ?", attractionID, queueType).
		Order("recorded_at DESC").
		Limit(1).
		First(&waitTime).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &waitTime, nil
}

// Insert appends a new observation row
func (r *GormWaitTimeRepository) Insert(ctx context.Context, waitTime *entity.WaitTime) error {
	return r.db.WithContext(ctx).Create(waitTime).Error
}

// DeactivateOthers clears IsActive on every row for the key except keepID
func (r *GormWaitTimeRepository) DeactivateOthers(ctx context.Context, attractionID string, queueType entity.QueueType, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.WaitTime{}).
		Where("attraction_id = ? AND queue_type = ? AND id <> ?", attractionID, queueType, keepID).
		Update("is_active", false).Error
}

// ActiveStatsForPark computes avg/max over active rows of a park's attractions
func (r *GormWaitTimeRepository) ActiveStatsForPark(ctx context.Context, parkID string) (repository.WaitStats, error) {
	var row struct {
		Avg *float64
		Max *int
	}
	err := r.db.WithContext(ctx).
		Model(&entity.WaitTime{}).
		Select("AVG(wait_times.wait_time_minutes) AS avg, MAX(wait_times.wait_time_minutes) AS max").
		Joins("JOIN attractions ON attractions.id = wait_times.attraction_id").
		Where("attractions.park_id = ? AND wait_times.is_active = ? AND wait_times.wait_time_minutes IS NOT NULL", parkID, true).
		Scan(&row).Error
	if err != nil {
		return repository.WaitStats{}, err
	}

	stats := repository.WaitStats{MaxMinutes: row.Max}
	if row.Avg != nil {
		avg := int(*row.Avg + 0.5)
		stats.AvgMinutes = &avg
	}
	return stats, nil
}
