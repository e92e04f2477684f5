package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// History repositories share one shape: fetch the latest snapshot for a key,
// append a new one, and deactivate every other row for that key. The insert
// and the bulk deactivate are two separate writes; the deactivate excludes
// the just-inserted row by id.

// ParkStatusHistoryRepository persists park status snapshots.
type ParkStatusHistoryRepository interface {
	FindLatest(ctx context.Context, parkID string) (*entity.ParkStatusHistory, error)
	Insert(ctx context.Context, row *entity.ParkStatusHistory) error
	DeactivateOthers(ctx context.Context, parkID string, keepID string) error
}

// AttractionHistoryRepository persists attraction snapshots.
type AttractionHistoryRepository interface {
	FindLatest(ctx context.Context, attractionID string) (*entity.AttractionHistory, error)
	Insert(ctx context.Context, row *entity.AttractionHistory) error
	DeactivateOthers(ctx context.Context, attractionID string, keepID string) error
}

// RestaurantHistoryRepository persists restaurant availability snapshots.
type RestaurantHistoryRepository interface {
	FindLatest(ctx context.Context, restaurantID string) (*entity.RestaurantHistory, error)
	Insert(ctx context.Context, row *entity.RestaurantHistory) error
	DeactivateOthers(ctx context.Context, restaurantID string, keepID string) error
}

// PurchaseHistoryRepository persists purchase price/availability snapshots.
type PurchaseHistoryRepository interface {
	FindLatest(ctx context.Context, purchaseID string) (*entity.PurchaseHistory, error)
	Insert(ctx context.Context, row *entity.PurchaseHistory) error
	DeactivateOthers(ctx context.Context, purchaseID string, keepID string) error
}
