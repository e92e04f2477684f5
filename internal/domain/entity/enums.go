package entity

import "strings"

// EntityType classifies a park child entity.
type EntityType string

const (
	EntityTypePark         EntityType = "PARK"
	EntityTypeAttraction   EntityType = "ATTRACTION"
	EntityTypeShow         EntityType = "SHOW"
	EntityTypeRestaurant   EntityType = "RESTAURANT"
	EntityTypeShop         EntityType = "SHOP"
	EntityTypeMeetAndGreet EntityType = "MEET_AND_GREET"
	EntityTypeExperience   EntityType = "EXPERIENCE"
	EntityTypeOther        EntityType = "OTHER"
)

// OperatingStatus is the closed set of attraction/wait-time statuses.
type OperatingStatus string

const (
	StatusOperating         OperatingStatus = "OPERATING"
	StatusDown              OperatingStatus = "DOWN"
	StatusClosed            OperatingStatus = "CLOSED"
	StatusRefurbishment     OperatingStatus = "REFURBISHMENT"
	StatusTemporarilyClosed OperatingStatus = "TEMPORARILY_CLOSED"
)

// QueueType classifies a wait-time queue.
type QueueType string

const (
	QueueStandby        QueueType = "STANDBY"
	QueueReturnTime     QueueType = "RETURN_TIME"
	QueuePaidReturnTime QueueType = "PAID_RETURN_TIME"
	QueueLightningLane  QueueType = "LIGHTNING_LANE"
	QueueFastPass       QueueType = "FAST_PASS"
	QueueSingleRider    QueueType = "SINGLE_RIDER"
)

// ShowType classifies a scheduled show.
type ShowType string

const (
	ShowRegular   ShowType = "REGULAR"
	ShowSpecial   ShowType = "SPECIAL"
	ShowSeasonal  ShowType = "SEASONAL"
	ShowFireworks ShowType = "FIREWORKS"
	ShowParade    ShowType = "PARADE"
)

// ScheduleType classifies a park operating-calendar entry.
type ScheduleType string

const (
	ScheduleOperating     ScheduleType = "OPERATING"
	ScheduleClosed        ScheduleType = "CLOSED"
	ScheduleSpecialHours  ScheduleType = "SPECIAL_HOURS"
	SchedulePrivateEvent  ScheduleType = "PRIVATE_EVENT"
	ScheduleTicketedEvent ScheduleType = "TICKETED_EVENT"
	ScheduleInfo          ScheduleType = "INFO"
)

// PurchaseType classifies an upsell purchase attached to a schedule entry.
type PurchaseType string

const (
	PurchasePackage    PurchaseType = "PACKAGE"
	PurchaseAttraction PurchaseType = "ATTRACTION"
)

// ParseEntityType coerces an upstream entity-type string onto the closed
// enum. Unknown values map to OTHER.
func ParseEntityType(s string) EntityType {
	switch EntityType(strings.ToUpper(s)) {
	case EntityTypePark:
		return EntityTypePark
	case EntityTypeAttraction:
		return EntityTypeAttraction
	case EntityTypeShow:
		return EntityTypeShow
	case EntityTypeRestaurant:
		return EntityTypeRestaurant
	case EntityTypeShop:
		return EntityTypeShop
	case EntityTypeMeetAndGreet:
		return EntityTypeMeetAndGreet
	case EntityTypeExperience:
		return EntityTypeExperience
	default:
		return EntityTypeOther
	}
}

// ParseOperatingStatus coerces an upstream status string onto the closed
// enum. Unknown values map to OPERATING.
func ParseOperatingStatus(s string) OperatingStatus {
	switch OperatingStatus(strings.ToUpper(s)) {
	case StatusOperating:
		return StatusOperating
	case StatusDown:
		return StatusDown
	case StatusClosed:
		return StatusClosed
	case StatusRefurbishment:
		return StatusRefurbishment
	case StatusTemporarilyClosed:
		return StatusTemporarilyClosed
	default:
		return StatusOperating
	}
}

// ParseQueueType coerces an upstream queue-type string onto the closed enum.
// Unknown values map to STANDBY.
func ParseQueueType(s string) QueueType {
	switch QueueType(strings.ToUpper(s)) {
	case QueueStandby:
		return QueueStandby
	case QueueReturnTime:
		return QueueReturnTime
	case QueuePaidReturnTime:
		return QueuePaidReturnTime
	case QueueLightningLane:
		return QueueLightningLane
	case QueueFastPass:
		return QueueFastPass
	case QueueSingleRider:
		return QueueSingleRider
	default:
		return QueueStandby
	}
}

// ParseShowType coerces an upstream show-time type onto the closed enum.
// The upstream mixes title-case labels ("Performance Time") with enum-style
// values; unknown values map to REGULAR.
func ParseShowType(s string) ShowType {
	switch strings.ToLower(s) {
	case "fireworks":
		return ShowFireworks
	case "parade":
		return ShowParade
	case "special", "performance time", "performance_time":
		return ShowSpecial
	case "seasonal":
		return ShowSeasonal
	default:
		return ShowRegular
	}
}

// ParseScheduleType coerces an upstream schedule-type string onto the closed
// enum. Unknown values map to OPERATING.
func ParseScheduleType(s string) ScheduleType {
	switch ScheduleType(strings.ToUpper(s)) {
	case ScheduleOperating:
		return ScheduleOperating
	case ScheduleClosed:
		return ScheduleClosed
	case ScheduleSpecialHours:
		return ScheduleSpecialHours
	case SchedulePrivateEvent:
		return SchedulePrivateEvent
	case ScheduleTicketedEvent:
		return ScheduleTicketedEvent
	case ScheduleInfo:
		return ScheduleInfo
	default:
		return ScheduleOperating
	}
}

// ParsePurchaseType coerces an upstream purchase-type string onto the closed
// enum. Unknown values map to PACKAGE.
func ParsePurchaseType(s string) PurchaseType {
	switch PurchaseType(strings.ToUpper(s)) {
	case PurchasePackage:
		return PurchasePackage
	case PurchaseAttraction:
		return PurchaseAttraction
	default:
		return PurchasePackage
	}
}
