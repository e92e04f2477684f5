package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// RestaurantRepository defines the interface for restaurant persistence.
type RestaurantRepository interface {
	Upsert(ctx context.Context, restaurant *entity.Restaurant) (id string, created bool, err error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.Restaurant, error)
	DeactivateMissingForPark(ctx context.Context, parkID string, seenExternalIDs []string) error
}
