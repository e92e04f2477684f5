package themeparks

import "parksync-service/internal/domain/entity"

// Location is a raw coordinate pair from the upstream API.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ParkSummary is the coarse park record embedded in a destination listing.
type ParkSummary struct {
	ID       string
	Name     string
	ParentID string
}

// ParkGroup is an upstream destination with its parks.
type ParkGroup struct {
	ID    string
	Name  string
	Parks []ParkSummary
}

// ParkDetail is the enriched park record from the entity endpoint.
type ParkDetail struct {
	ID            string
	Name          string
	Timezone      string
	Location      *Location
	ParentID      string
	DestinationID string
}

// ChildEntity is one child of a park from the children endpoint, with the
// upstream type string already coerced onto the closed enum.
type ChildEntity struct {
	ID         string
	Name       string
	EntityType entity.EntityType
	ParentID   string
	Location   *Location
}

// LiveEntity is one item of a park's live data. Status is nil when the
// upstream reported none.
type LiveEntity struct {
	ID          string
	Name        string
	EntityType  entity.EntityType
	Status      *entity.OperatingStatus
	LastUpdated string
}

// WaitTimeObservation is one queue reading fanned out of live data.
type WaitTimeObservation struct {
	AttractionID    string
	QueueType       entity.QueueType
	WaitTimeMinutes *int
	Status          entity.OperatingStatus
}

// ShowTimeEntry is a single performance slot.
type ShowTimeEntry struct {
	StartTime string
	EndTime   string
	ShowType  entity.ShowType
}

// ShowListing groups the performance slots of one show entity.
type ShowListing struct {
	ID        string
	Name      string
	ShowTimes []ShowTimeEntry
}

// LiveData is the full decomposition of a park's live endpoint.
type LiveData struct {
	WaitTimes []WaitTimeObservation
	Shows     []ShowListing
	Entities  []LiveEntity
}

// PurchaseOffer is an upsell product attached to a schedule entry.
type PurchaseOffer struct {
	ID             string
	Name           string
	Type           entity.PurchaseType
	PriceAmount    *int
	PriceCurrency  string
	PriceFormatted string
	Available      bool
}

// ScheduleEntry is one operating-calendar day for a park.
type ScheduleEntry struct {
	Date        string
	Type        entity.ScheduleType
	OpeningTime string
	ClosingTime string
	Description string
	Purchases   []PurchaseOffer
}

// Wire shapes of the upstream JSON endpoints.

type destinationsResponse struct {
	Destinations []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Parks []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"parks"`
	} `json:"destinations"`
}

type entityResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Timezone      string    `json:"timezone"`
	Location      *Location `json:"location"`
	EntityType    string    `json:"entityType"`
	ParentID      string    `json:"parentId"`
	DestinationID string    `json:"destinationId"`
}

type childrenResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children []struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		EntityType string    `json:"entityType"`
		ParentID   string    `json:"parentId"`
		Location   *Location `json:"location"`
	} `json:"children"`
}

type liveDataResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LiveData []struct {
		ID         string                      `json:"id"`
		Name       string                      `json:"name"`
		EntityType string                      `json:"entityType"`
		Status     string                      `json:"status"`
		Queue      map[string]struct {
			WaitTime *int `json:"waitTime"`
		} `json:"queue"`
		Showtimes []struct {
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
			Type      string `json:"type"`
		} `json:"showtimes"`
		LastUpdated string `json:"lastUpdated"`
	} `json:"liveData"`
}

type scheduleResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule []struct {
		Date        string `json:"date"`
		Type        string `json:"type"`
		OpeningTime string `json:"openingTime"`
		ClosingTime string `json:"closingTime"`
		Description string `json:"description"`
		Purchases   []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Type  string `json:"type"`
			Price *struct {
				Amount    float64 `json:"amount"`
				Currency  string  `json:"currency"`
				Formatted string  `json:"formatted"`
			} `json:"price"`
			Available bool `json:"available"`
		} `json:"purchases"`
	} `json:"schedule"`
}
