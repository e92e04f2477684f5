package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements the RestaurantRepository interface
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository
func NewGormRestaurantRepository(db *gorm.DB) repository.RestaurantRepository {
	return &GormRestaurantRepository{
		db: db,
	}
}

// Upsert creates or updates a restaurant keyed by external id
func (r *GormRestaurantRepository) Upsert(ctx context.Context, restaurant *entity.Restaurant) (string, bool, error) {
	var existing entity.Restaurant
	err := r.db.WithContext(ctx).Where("external_id = ?", restaurant.ExternalID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, errors.Wrapf(err, "find restaurant %s", restaurant.ExternalID)
		}
		restaurant.ID = uuid.NewString()
		if err := r.db.WithContext(ctx).Create(restaurant).Error; err != nil {
			return "", false, errors.Wrapf(err, "create restaurant %s", restaurant.ExternalID)
		}
		return restaurant.ID, true, nil
	}

	restaurant.ID = existing.ID
	restaurant.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(restaurant).Error; err != nil {
		return "", false, errors.Wrapf(err, "update restaurant %s", restaurant.ExternalID)
	}
	return restaurant.ID, false, nil
}

// FindByExternalID finds a restaurant by its upstream id
func (r *GormRestaurantRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// DeactivateMissingForPark marks the park's restaurants absent from the seen
// set as inactive
func (r *GormRestaurantRepository) DeactivateMissingForPark(ctx context.Context, parkID string, seenExternalIDs []string) error {
	if len(seenExternalIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Restaurant{}).
		Where("park_id = ? AND external_id NOT IN ?", parkID, seenExternalIDs).
		Update("is_active", false).Error
}
