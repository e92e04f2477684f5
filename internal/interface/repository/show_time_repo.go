package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormShowTimeRepository implements the ShowTimeRepository interface
type GormShowTimeRepository struct {
	db *gorm.DB
}

// NewGormShowTimeRepository creates a new GORM show-time repository
func NewGormShowTimeRepository(db *gorm.DB) repository.ShowTimeRepository {
	return &GormShowTimeRepository{
		db: db,
	}
}

// ReplaceForAttraction hard-deletes the attraction's show times and inserts
// the latest fetch in their place, in one transaction
func (r *GormShowTimeRepository) ReplaceForAttraction(ctx context.Context, attractionID string, times []entity.ShowTime) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attraction_id = ?", attractionID).Delete(&entity.ShowTime{}).Error; err != nil {
			return errors.Wrapf(err, "delete show times for attraction %s", attractionID)
		}
		for i := range times {
			times[i].ID = uuid.NewString()
			times[i].AttractionID = attractionID
		}
		if len(times) == 0 {
			return nil
		}
		if err := tx.Create(&times).Error; err != nil {
			return errors.Wrapf(err, "insert show times for attraction %s", attractionID)
		}
		return nil
	})
}

// FindByAttraction returns the attraction's show times ordered by start time
func (r *GormShowTimeRepository) FindByAttraction(ctx context.Context, attractionID string) ([]entity.ShowTime, error) {
	var times []entity.ShowTime
	err := r.db.WithContext(ctx).
		Where("attraction_id = ?", attractionID).
		Order("start_time ASC").
		Find(&times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}
