package repository

import (
	"context"
	"time"

	"parksync-service/internal/domain/entity"
)

// ParkScheduleRepository defines the interface for schedule persistence.
// Upsert keys on (park, date); the table enforces that pair as unique.
type ParkScheduleRepository interface {
	Upsert(ctx context.Context, schedule *entity.ParkSchedule) (id string, created bool, err error)
	FindByParkAndDate(ctx context.Context, parkID string, date time.Time) (*entity.ParkSchedule, error)
}
