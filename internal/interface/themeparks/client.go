package themeparks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parksync-service/internal/domain/entity"
	"parksync-service/pkg/logger"

	"github.com/pkg/errors"
)

const maxRedirects = 5

// Client issues typed read requests against the theme-park data API and
// translates the raw JSON shapes into domain DTOs.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a new upstream API client
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		logger: log,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("Upstream request failed", "path", path, "status", resp.StatusCode)
		return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchParkGroups lists all destinations with their parks
func (c *Client) FetchParkGroups(ctx context.Context) ([]ParkGroup, error) {
	var resp destinationsResponse
	if err := c.getJSON(ctx, "/destinations", &resp); err != nil {
		return nil, errors.Wrap(err, "fetch park groups")
	}

	groups := make([]ParkGroup, 0, len(resp.Destinations))
	for _, d := range resp.Destinations {
		group := ParkGroup{ID: d.ID, Name: d.Name}
		for _, p := range d.Parks {
			group.Parks = append(group.Parks, ParkSummary{ID: p.ID, Name: p.Name, ParentID: d.ID})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// FetchPark fetches the detailed record of a single park
func (c *Client) FetchPark(ctx context.Context, parkID string) (*ParkDetail, error) {
	var resp entityResponse
	if err := c.getJSON(ctx, "/entity/"+parkID, &resp); err != nil {
		return nil, errors.Wrapf(err, "fetch park %s", parkID)
	}

	return &ParkDetail{
		ID:            resp.ID,
		Name:          resp.Name,
		Timezone:      resp.Timezone,
		Location:      resp.Location,
		ParentID:      resp.ParentID,
		DestinationID: resp.DestinationID,
	}, nil
}

// FetchParkEntities lists all children of a park with coerced entity types
func (c *Client) FetchParkEntities(ctx context.Context, parkID string) ([]ChildEntity, error) {
	var resp childrenResponse
	if err := c.getJSON(ctx, "/entity/"+parkID+"/children", &resp); err != nil {
		return nil, errors.Wrapf(err, "fetch children of park %s", parkID)
	}

	children := make([]ChildEntity, 0, len(resp.Children))
	for _, child := range resp.Children {
		children = append(children, ChildEntity{
			ID:         child.ID,
			Name:       child.Name,
			EntityType: entity.ParseEntityType(child.EntityType),
			ParentID:   child.ParentID,
			Location:   child.Location,
		})
	}
	return children, nil
}

// FetchAttractions lists the ATTRACTION children of a park
func (c *Client) FetchAttractions(ctx context.Context, parkID string) ([]ChildEntity, error) {
	return c.fetchChildrenOfType(ctx, parkID, entity.EntityTypeAttraction)
}

// FetchRestaurants lists the RESTAURANT children of a park
func (c *Client) FetchRestaurants(ctx context.Context, parkID string) ([]ChildEntity, error) {
	return c.fetchChildrenOfType(ctx, parkID, entity.EntityTypeRestaurant)
}

func (c *Client) fetchChildrenOfType(ctx context.Context, parkID string, entityType entity.EntityType) ([]ChildEntity, error) {
	children, err := c.FetchParkEntities(ctx, parkID)
	if err != nil {
		return nil, err
	}

	var filtered []ChildEntity
	for _, child := range children {
		if child.EntityType == entityType {
			filtered = append(filtered, child)
		}
	}
	return filtered, nil
}

// FetchLiveData decomposes a park's live endpoint into wait times, show
// listings, and status-bearing entities
func (c *Client) FetchLiveData(ctx context.Context, parkID string) (*LiveData, error) {
	var resp liveDataResponse
	if err := c.getJSON(ctx, "/entity/"+parkID+"/live", &resp); err != nil {
		return nil, errors.Wrapf(err, "fetch live data for park %s", parkID)
	}

	live := &LiveData{}
	for _, item := range resp.LiveData {
		liveEntity := LiveEntity{
			ID:          item.ID,
			Name:        item.Name,
			EntityType:  entity.ParseEntityType(item.EntityType),
			LastUpdated: item.LastUpdated,
		}
		if item.Status != "" {
			status := entity.ParseOperatingStatus(item.Status)
			liveEntity.Status = &status
		}
		live.Entities = append(live.Entities, liveEntity)

		// One observation per queue type carrying a wait time.
		for queueTypeStr, queueData := range item.Queue {
			if queueData.WaitTime == nil {
				continue
			}
			status := entity.StatusOperating
			if item.Status != "" {
				status = entity.ParseOperatingStatus(item.Status)
			}
			live.WaitTimes = append(live.WaitTimes, WaitTimeObservation{
				AttractionID:    item.ID,
				QueueType:       entity.ParseQueueType(queueTypeStr),
				WaitTimeMinutes: queueData.WaitTime,
				Status:          status,
			})
		}

		if len(item.Showtimes) > 0 {
			listing := ShowListing{ID: item.ID, Name: item.Name}
			for _, st := range item.Showtimes {
				listing.ShowTimes = append(listing.ShowTimes, ShowTimeEntry{
					StartTime: st.StartTime,
					EndTime:   st.EndTime,
					ShowType:  entity.ParseShowType(st.Type),
				})
			}
			live.Shows = append(live.Shows, listing)
		}
	}

	return live, nil
}

// FetchWaitTimes returns just the wait-time observations of a park
func (c *Client) FetchWaitTimes(ctx context.Context, parkID string) ([]WaitTimeObservation, error) {
	live, err := c.FetchLiveData(ctx, parkID)
	if err != nil {
		return nil, err
	}
	return live.WaitTimes, nil
}

// FetchShowTimes returns just the show listings of a park
func (c *Client) FetchShowTimes(ctx context.Context, parkID string) ([]ShowListing, error) {
	live, err := c.FetchLiveData(ctx, parkID)
	if err != nil {
		return nil, err
	}
	return live.Shows, nil
}

// FetchParkSchedule lists the operating calendar of a park
func (c *Client) FetchParkSchedule(ctx context.Context, parkID string) ([]ScheduleEntry, error) {
	var resp scheduleResponse
	if err := c.getJSON(ctx, "/entity/"+parkID+"/schedule", &resp); err != nil {
		return nil, errors.Wrapf(err, "fetch schedule for park %s", parkID)
	}

	schedule := make([]ScheduleEntry, 0, len(resp.Schedule))
	for _, item := range resp.Schedule {
		sched := ScheduleEntry{
			Date:        item.Date,
			Type:        entity.ParseScheduleType(item.Type),
			OpeningTime: item.OpeningTime,
			ClosingTime: item.ClosingTime,
			Description: item.Description,
		}
		for _, p := range item.Purchases {
			offer := PurchaseOffer{
				ID:        p.ID,
				Name:      p.Name,
				Type:      entity.ParsePurchaseType(p.Type),
				Available: p.Available,
			}
			if p.Price != nil {
				amount := int(p.Price.Amount)
				offer.PriceAmount = &amount
				offer.PriceCurrency = p.Price.Currency
				offer.PriceFormatted = p.Price.Formatted
			}
			sched.Purchases = append(sched.Purchases, offer)
		}
		schedule = append(schedule, sched)
	}
	return schedule, nil
}

// FetchCurrentParkStatus derives a park's operating status of the day from
// its schedule: today's entry wins, otherwise the most recent past entry.
// Returns "" when the status cannot be determined.
func (c *Client) FetchCurrentParkStatus(ctx context.Context, parkID string) (string, error) {
	schedule, err := c.FetchParkSchedule(ctx, parkID)
	if err != nil {
		return "", err
	}

	today := time.Now().UTC().Format("2006-01-02")

	var mostRecent string
	var mostRecentType entity.ScheduleType
	for _, item := range schedule {
		if item.Date == today {
			return string(item.Type), nil
		}
		if item.Date < today && item.Date > mostRecent {
			mostRecent = item.Date
			mostRecentType = item.Type
		}
	}

	if mostRecent == "" {
		return "", nil
	}
	return string(mostRecentType), nil
}

// FetchEntity fetches a single entity record by id
func (c *Client) FetchEntity(ctx context.Context, entityID string) (*ChildEntity, error) {
	var resp entityResponse
	if err := c.getJSON(ctx, "/entity/"+entityID, &resp); err != nil {
		return nil, errors.Wrapf(err, "fetch entity %s", entityID)
	}

	return &ChildEntity{
		ID:         resp.ID,
		Name:       resp.Name,
		EntityType: entity.ParseEntityType(resp.EntityType),
		ParentID:   resp.ParentID,
		Location:   resp.Location,
	}, nil
}
