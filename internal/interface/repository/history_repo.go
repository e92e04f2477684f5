package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// The four history repositories share one shape: latest-row lookup, append,
// and bulk deactivate excluding the kept row.

// GormParkStatusHistoryRepository implements ParkStatusHistoryRepository
type GormParkStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormParkStatusHistoryRepository creates a new park status history repository
func NewGormParkStatusHistoryRepository(db *gorm.DB) repository.ParkStatusHistoryRepository {
	return &GormParkStatusHistoryRepository{db: db}
}

// FindLatest returns the newest snapshot for the park, or nil when none
func (r *GormParkStatusHistoryRepository) FindLatest(ctx context.Context, parkID string) (*entity.ParkStatusHistory, error) {
	var row entity.ParkStatusHistory
	err := r.db.WithContext(ctx).
		Where("park_id = ?", parkID).
		Order("recorded_at DESC").
		Limit(1).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert appends a new snapshot row
func (r *GormParkStatusHistoryRepository) Insert(ctx context.Context, row *entity.ParkStatusHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeactivateOthers clears IsActive on every row for the park except keepID
func (r *GormParkStatusHistoryRepository) DeactivateOthers(ctx context.Context, parkID string, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ParkStatusHistory{}).
		Where("park_id = ? AND id <> ?", parkID, keepID).
		Update("is_active", false).Error
}

// GormAttractionHistoryRepository implements AttractionHistoryRepository
type GormAttractionHistoryRepository struct {
	db *gorm.DB
}

// NewGormAttractionHistoryRepository creates a new attraction history repository
func NewGormAttractionHistoryRepository(db *gorm.DB) repository.AttractionHistoryRepository {
	return &GormAttractionHistoryRepository{db: db}
}

// FindLatest returns the newest snapshot for the attraction, or nil when none
func (r *GormAttractionHistoryRepository) FindLatest(ctx context.Context, attractionID string) (*entity.AttractionHistory, error) {
	var row entity.AttractionHistory
	err := r.db.WithContext(ctx).
		Where("attraction_id = ?", attractionID).
		Order("recorded_at DESC").
		Limit(1).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert appends a new snapshot row
func (r *GormAttractionHistoryRepository) Insert(ctx context.Context, row *entity.AttractionHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeactivateOthers clears IsActive on every row for the attraction except keepID
func (r *GormAttractionHistoryRepository) DeactivateOthers(ctx context.Context, attractionID string, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.AttractionHistory{}).
		Where("attraction_id = ? AND id <> ?", attractionID, keepID).
		Update("is_active", false).Error
}

// GormRestaurantHistoryRepository implements RestaurantHistoryRepository
type GormRestaurantHistoryRepository struct {
	db *gorm.DB
}

// NewGormRestaurantHistoryRepository creates a new restaurant history repository
func NewGormRestaurantHistoryRepository(db *gorm.DB) repository.RestaurantHistoryRepository {
	return &GormRestaurantHistoryRepository{db: db}
}

// FindLatest returns the newest snapshot for the restaurant, or nil when none
func (r *GormRestaurantHistoryRepository) FindLatest(ctx context.Context, restaurantID string) (*entity.RestaurantHistory, error) {
	var row entity.RestaurantHistory
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("recorded_at DESC").
		Limit(1).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert appends a new snapshot row
func (r *GormRestaurantHistoryRepository) Insert(ctx context.Context, row *entity.RestaurantHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeactivateOthers clears IsActive on every row for the restaurant except keepID
func (r *GormRestaurantHistoryRepository) DeactivateOthers(ctx context.Context, restaurantID string, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.RestaurantHistory{}).
		Where("restaurant_id = ? AND id <> ?", restaurantID, keepID).
		Update("is_active", false).Error
}

// GormPurchaseHistoryRepository implements PurchaseHistoryRepository
type GormPurchaseHistoryRepository struct {
	db *gorm.DB
}

// NewGormPurchaseHistoryRepository creates a new purchase history repository
func NewGormPurchaseHistoryRepository(db *gorm.DB) repository.PurchaseHistoryRepository {
	return &GormPurchaseHistoryRepository{db: db}
}

// FindLatest returns the newest snapshot for the purchase, or nil when none
func (r *GormPurchaseHistoryRepository) FindLatest(ctx context.Context, purchaseID string) (*entity.PurchaseHistory, error) {
	var row entity.PurchaseHistory
	err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("recorded_at DESC").
		Limit(1).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert appends a new snapshot row
func (r *GormPurchaseHistoryRepository) Insert(ctx context.Context, row *entity.PurchaseHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeactivateOthers clears IsActive on every row for the purchase except keepID
func (r *GormPurchaseHistoryRepository) DeactivateOthers(ctx context.Context, purchaseID string, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.PurchaseHistory{}).
		Where("purchase_id = ? AND id <> ?", purchaseID, keepID).
		Update("is_active", false).Error
}
