package repository

import (
	"context"
	"time"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormParkScheduleRepository implements the ParkScheduleRepository interface
type GormParkScheduleRepository struct {
	db *gorm.DB
}

// NewGormParkScheduleRepository creates a new GORM schedule repository
func NewGormParkScheduleRepository(db *gorm.DB) repository.ParkScheduleRepository {
	return &GormParkScheduleRepository{
		db: db,
	}
}

// Upsert creates or updates a schedule entry keyed by (park, date)
func (r *GormParkScheduleRepository) Upsert(ctx context.Context, schedule *entity.ParkSchedule) (string, bool, error) {
	var existing entity.ParkSchedule
	err := r.db.WithContext(ctx).
		Where("park_id = ? AND date = ?", schedule.ParkID, schedule.Date).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, errors.Wrapf(err, "find schedule for park %s", schedule.ParkID)
		}
		schedule.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
			return "", false, err
		}
		return schedule.ID, true, nil
	}

	schedule.ID = existing.ID
	schedule.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(schedule).Error; err != nil {
		return "", false, err
	}
	return schedule.ID, false, nil
}

// FindByParkAndDate finds a schedule entry for a park on a calendar date
func (r *GormParkScheduleRepository) FindByParkAndDate(ctx context.Context, parkID string, date time.Time) (*entity.ParkSchedule, error) {
	var schedule entity.ParkSchedule
	err := r.db.WithContext(ctx).
		Where("park_id = ? AND date = ?", parkID, date).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}
