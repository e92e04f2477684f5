package entity

import "time"

// History rows are append-only snapshots of their parent's mutable fields.
// Exactly one row per parent carries IsActive=true: the current snapshot.
// Every history table carries the same five-part index pattern so that
// "most recent row for key" and time-range queries stay index-backed.

// ParkStatusHistory snapshots a park's operating state plus wait-time
// metrics computed across its attractions at record time.
type ParkStatusHistory struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	ParkID          string `gorm:"column:park_id;index:idx_psh_park_recorded,priority:1;index:idx_psh_current,priority:1"`
	OperatingStatus string `gorm:"column:operating_status;index:idx_psh_status_recorded,priority:1"`
	IsAtCapacity    bool   `gorm:"column:is_at_capacity;index:idx_psh_capacity_recorded,priority:1"`

	AvgWaitTime            *int `gorm:"column:avg_wait_time"`
	MaxWaitTime            *int `gorm:"column:max_wait_time"`
	TotalAttractionsOpen   *int `gorm:"column:total_attractions_open"`
	TotalAttractionsClosed *int `gorm:"column:total_attractions_closed"`

	IsActive   bool      `gorm:"column:is_active;default:false;index:idx_psh_current,priority:2"`
	RecordedAt time.Time `gorm:"column:recorded_at;index:idx_psh_recorded;index:idx_psh_park_recorded,priority:2;index:idx_psh_status_recorded,priority:2;index:idx_psh_capacity_recorded,priority:2;index:idx_psh_current,priority:3"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default table name
func (ParkStatusHistory) TableName() string {
	return "park_status_history"
}

// AttractionHistory snapshots an attraction's mutable fields.
type AttractionHistory struct {
	ID           string           `gorm:"type:uuid;primaryKey"`
	AttractionID string           `gorm:"column:attraction_id;index:idx_ah_attr_recorded,priority:1;index:idx_ah_current,priority:1"`
	Name         string           `gorm:"not null"`
	EntityType   EntityType       `gorm:"column:entity_type;index:idx_ah_type_status_recorded,priority:1"`
	Status       *OperatingStatus `gorm:"column:status;index:idx_ah_status_recorded,priority:1;index:idx_ah_type_status_recorded,priority:2"`
	Latitude     *float64         `gorm:"type:decimal(10,8)"`
	Longitude    *float64         `gorm:"type:decimal(11,8)"`

	// Whether the attraction row itself was active when recorded.
	IsActiveAttraction bool `gorm:"column:is_active_attraction;default:false"`

	IsActive   bool      `gorm:"column:is_active;default:false;index:idx_ah_current,priority:2"`
	RecordedAt time.Time `gorm:"column:recorded_at;index:idx_ah_recorded;index:idx_ah_attr_recorded,priority:2;index:idx_ah_status_recorded,priority:2;index:idx_ah_type_status_recorded,priority:3;index:idx_ah_current,priority:3"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default table name
func (AttractionHistory) TableName() string {
	return "attraction_history"
}

// RestaurantHistory snapshots a restaurant's availability state.
type RestaurantHistory struct {
	ID           string   `gorm:"type:uuid;primaryKey"`
	RestaurantID string   `gorm:"column:restaurant_id;index:idx_rh_rest_recorded,priority:1;index:idx_rh_current,priority:1"`
	Name         string   `gorm:"not null"`
	Latitude     *float64 `gorm:"type:decimal(10,8)"`
	Longitude    *float64 `gorm:"type:decimal(11,8)"`

	AvailabilityStatus  string `gorm:"column:availability_status;index:idx_rh_avail_recorded,priority:1"`
	AcceptsReservations bool   `gorm:"column:accepts_reservations;default:false;index:idx_rh_reserv_recorded,priority:1"`
	IsActiveRestaurant  bool   `gorm:"column:is_active_restaurant;default:false"`

	IsActive   bool      `gorm:"column:is_active;default:false;index:idx_rh_current,priority:2"`
	RecordedAt time.Time `gorm:"column:recorded_at;index:idx_rh_recorded;index:idx_rh_rest_recorded,priority:2;index:idx_rh_avail_recorded,priority:2;index:idx_rh_reserv_recorded,priority:2;index:idx_rh_current,priority:3"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default table name
func (RestaurantHistory) TableName() string {
	return "restaurant_history"
}

// PurchaseHistory snapshots a purchase's price and availability.
type PurchaseHistory struct {
	ID         string       `gorm:"type:uuid;primaryKey"`
	PurchaseID string       `gorm:"column:purchase_id;index:idx_ph_purchase_recorded,priority:1;index:idx_ph_current,priority:1"`
	Name       string       `gorm:"not null"`
	Type       PurchaseType `gorm:"column:type"`

	PriceAmount    *int   `gorm:"column:price_amount;index:idx_ph_price_recorded,priority:1"`
	PriceCurrency  string `gorm:"column:price_currency;size:3"`
	PriceFormatted string `gorm:"column:price_formatted"`
	Available      bool   `gorm:"column:available;index:idx_ph_available_recorded,priority:1"`

	IsActive   bool      `gorm:"column:is_active;default:false;index:idx_ph_current,priority:2"`
	RecordedAt time.Time `gorm:"column:recorded_at;index:idx_ph_recorded;index:idx_ph_purchase_recorded,priority:2;index:idx_ph_price_recorded,priority:2;index:idx_ph_available_recorded,priority:2;index:idx_ph_current,priority:3"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default table name
func (PurchaseHistory) TableName() string {
	return "purchase_history"
}
