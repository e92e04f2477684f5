package entity

import "time"

// Restaurant is a dining location inside a park, tracked separately from
// attractions so availability history can be recorded per restaurant.
type Restaurant struct {
	ID         string   `gorm:"type:uuid;primaryKey"`
	ExternalID string   `gorm:"column:external_id;uniqueIndex"`
	Name       string   `gorm:"not null;index:idx_restaurants_park_name,priority:2"`
	Slug       string   `gorm:"column:slug"`
	Latitude   *float64 `gorm:"type:decimal(10,8)"`
	Longitude  *float64 `gorm:"type:decimal(11,8)"`

	// available / full / closed, as reported upstream.
	AvailabilityStatus  string `gorm:"column:availability_status"`
	AcceptsReservations bool   `gorm:"column:accepts_reservations;default:false"`

	ParkID     string    `gorm:"column:park_id;index:idx_restaurants_park_name,priority:1;index:idx_restaurants_park_active,priority:1"`
	IsActive   bool      `gorm:"column:is_active;default:false;index:idx_restaurants_park_active,priority:2"`
	LastSynced time.Time `gorm:"column:last_synced"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (Restaurant) TableName() string {
	return "restaurants"
}
