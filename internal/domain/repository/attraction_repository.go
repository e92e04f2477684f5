package repository

import (
	"context"

	"parksync-service/internal/domain/entity"
)

// AttractionRepository defines the interface for attraction persistence.
type AttractionRepository interface {
	Upsert(ctx context.Context, attraction *entity.Attraction) (id string, created bool, err error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.Attraction, error)
	// UpdateStatus updates the live operating status and bumps LastSynced.
	UpdateStatus(ctx context.Context, id string, status entity.OperatingStatus) error
	// CountByStatus returns how many active attractions of the park are
	// currently operating vs. not.
	CountByStatus(ctx context.Context, parkID string) (open int, closed int, err error)
	// DeactivateMissingForPark scopes deactivation to one park's rows. An
	// empty seen set is a no-op.
	DeactivateMissingForPark(ctx context.Context, parkID string, seenExternalIDs []string) error
}
