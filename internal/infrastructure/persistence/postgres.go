package persistence

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"parksync-service/internal/domain/entity"
)

// Entities to auto-migrate, parents before children.
var entities = []interface{}{
	&entity.ParkGroup{},
	&entity.Park{},
	&entity.Attraction{},
	&entity.Restaurant{},
	&entity.WaitTime{},
	&entity.ShowTime{},
	&entity.ParkSchedule{},
	&entity.Purchase{},
	&entity.ParkStatusHistory{},
	&entity.AttractionHistory{},
	&entity.RestaurantHistory{},
	&entity.PurchaseHistory{},
}

// NewPostgres opens the Postgres connection and migrates the schema
func NewPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	if err := db.AutoMigrate(entities...); err != nil {
		return nil, errors.Wrap(err, "auto migrate")
	}

	return db, nil
}
