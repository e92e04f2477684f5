package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// ParkRepository defines the interface for park persistence.
type ParkRepository interface {
	Upsert(ctx context.Context, park *entity.Park) (id string, created bool, err error)
	FindAll(ctx context.Context) ([]entity.Park, error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.Park, error)
	Save(ctx context.Context, park *entity.Park) error
	// UpdateOperatingStatus updates just the live status fields and bumps
	// LastSynced.
	UpdateOperatingStatus(ctx context.Context, id string, status string, atCapacity bool) error
	// FindNeedingLocation returns parks with coordinates but incomplete
	// resolved location fields.
	FindNeedingLocation(ctx context.Context) ([]entity.Park, error)
	DeactivateMissing(ctx context.Context, seenExternalIDs []string) error
}
