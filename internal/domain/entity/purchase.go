package entity

import "time"

// Purchase is an upsell product (lightning lane package, paid attraction
// entry) attached to a schedule entry. Price amount is stored in cents.
type Purchase struct {
	ID             string       `gorm:"type:uuid;primaryKey"`
	ExternalID     string       `gorm:"column:external_id;uniqueIndex"`
	ParkScheduleID string       `gorm:"column:park_schedule_id;index:idx_purchases_schedule_type,priority:1;index:idx_purchases_schedule_available,priority:1"`
	Name           string       `gorm:"not null"`
	Type           PurchaseType `gorm:"column:type;index:idx_purchases_schedule_type,priority:2"`
	PriceAmount    *int         `gorm:"column:price_amount"`
	PriceCurrency  string       `gorm:"column:price_currency;size:3"`
	PriceFormatted string       `gorm:"column:price_formatted"`
	Available      bool         `gorm:"column:available;default:false;index:idx_purchases_schedule_available,priority:2"`
	IsActive       bool         `gorm:"column:is_active;default:true"`
	LastSynced     time.Time    `gorm:"column:last_synced"`
	CreatedAt      time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default table name
func (Purchase) TableName() string {
	return "purchases"
}
