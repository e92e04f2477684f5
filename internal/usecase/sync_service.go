package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"
	"parksync-service/internal/interface/geocode"
	"parksync-service/internal/interface/themeparks"
	"parksync-service/pkg/logger"
	"parksync-service/pkg/metrics"
	"parksync-service/pkg/utils"
)

// ParksAPI is the slice of the upstream client the sync engine needs.
type ParksAPI interface {
	FetchParkGroups(ctx context.Context) ([]themeparks.ParkGroup, error)
	FetchPark(ctx context.Context, parkID string) (*themeparks.ParkDetail, error)
	FetchParkEntities(ctx context.Context, parkID string) ([]themeparks.ChildEntity, error)
	FetchRestaurants(ctx context.Context, parkID string) ([]themeparks.ChildEntity, error)
	FetchLiveData(ctx context.Context, parkID string) (*themeparks.LiveData, error)
	FetchParkSchedule(ctx context.Context, parkID string) ([]themeparks.ScheduleEntry, error)
	FetchCurrentParkStatus(ctx context.Context, parkID string) (string, error)
}

// SyncService pulls the upstream catalog into Postgres. Parks are processed
// in parallel within a pass; a failure on one park never aborts the others.
type SyncService struct {
	api              ParksAPI
	parkGroupRepo    repository.ParkGroupRepository
	parkRepo         repository.ParkRepository
	attractionRepo   repository.AttractionRepository
	restaurantRepo   repository.RestaurantRepository
	showTimeRepo     repository.ShowTimeRepository
	parkScheduleRepo repository.ParkScheduleRepository
	purchaseRepo     repository.PurchaseRepository
	recorder         *HistoryRecorder
	resolver         geocode.Resolver

	geocodeBatchSize  int
	geocodeBatchDelay time.Duration

	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewSyncService creates a new sync service
func NewSyncService(
	api ParksAPI,
	parkGroupRepo repository.ParkGroupRepository,
	parkRepo repository.ParkRepository,
	attractionRepo repository.AttractionRepository,
	restaurantRepo repository.RestaurantRepository,
	showTimeRepo repository.ShowTimeRepository,
	parkScheduleRepo repository.ParkScheduleRepository,
	purchaseRepo repository.PurchaseRepository,
	recorder *HistoryRecorder,
	resolver geocode.Resolver,
	geocodeBatchSize int,
	geocodeBatchDelay time.Duration,
	log logger.Logger,
	m *metrics.Metrics,
) *SyncService {
	return &SyncService{
		api:               api,
		parkGroupRepo:     parkGroupRepo,
		parkRepo:          parkRepo,
		attractionRepo:    attractionRepo,
		restaurantRepo:    restaurantRepo,
		showTimeRepo:      showTimeRepo,
		parkScheduleRepo:  parkScheduleRepo,
		purchaseRepo:      purchaseRepo,
		recorder:          recorder,
		resolver:          resolver,
		geocodeBatchSize:  geocodeBatchSize,
		geocodeBatchDelay: geocodeBatchDelay,
		logger:            log,
		metrics:           m,
	}
}

// SyncAll runs a full catalog pass: groups, parks, then per-park attractions,
// shows, restaurants, and schedules.
func (s *SyncService) SyncAll(ctx context.Context) error {
	start := time.Now()
	s.logger.Info("Starting full sync pass")

	if err := s.SyncParkGroups(ctx); err != nil {
		return errors.Wrap(err, "sync park groups")
	}
	if err := s.SyncParks(ctx); err != nil {
		return errors.Wrap(err, "sync parks")
	}
	if err := s.UpdateParkLocations(ctx); err != nil {
		s.logger.Error("Location backfill failed, continuing pass", "error", err.Error())
		s.metrics.ErrorsCount.WithLabelValues("update_locations").Inc()
	}
	if err := s.SyncAttractionsAndShows(ctx); err != nil {
		return errors.Wrap(err, "sync attractions and shows")
	}
	if err := s.SyncRestaurants(ctx); err != nil {
		return errors.Wrap(err, "sync restaurants")
	}
	if err := s.SyncSchedules(ctx); err != nil {
		return errors.Wrap(err, "sync schedules")
	}

	s.metrics.SyncPasses.WithLabelValues("full").Inc()
	s.metrics.SyncDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("Full sync pass completed", "duration", time.Since(start).String())
	return nil
}

// SyncParkGroups upserts all destinations and deactivates the ones no
// longer listed upstream.
func (s *SyncService) SyncParkGroups(ctx context.Context) error {
	groups, err := s.api.FetchParkGroups(ctx)
	if err != nil {
		return err
	}

	// The deactivation exclusion set is the fetched set, not the set of
	// successful upserts: a row whose write fails must go stale, not inactive.
	seen := make([]string, 0, len(groups))
	for _, g := range groups {
		seen = append(seen, g.ID)
	}

	for _, g := range groups {
		group := &entity.ParkGroup{
			ExternalID: g.ID,
			Name:       g.Name,
			Slug:       utils.Slugify(g.Name),
			IsActive:   true,
			LastSynced: time.Now().UTC(),
		}
		if _, _, err := s.parkGroupRepo.Upsert(ctx, group); err != nil {
			s.logger.Error("Failed to upsert park group", "externalId", g.ID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("sync_park_groups").Inc()
			continue
		}
		s.metrics.EntitiesSynced.WithLabelValues("park_groups").Inc()
	}

	if err := s.parkGroupRepo.DeactivateMissing(ctx, seen); err != nil {
		return errors.Wrap(err, "deactivate missing park groups")
	}

	s.logger.Info("Park groups synced", "count", len(seen))
	return nil
}

// SyncParks upserts every park of every destination. Each park is enriched
// with its detail record and current operating status when those fetches
// succeed; the coarse listing data is used otherwise.
func (s *SyncService) SyncParks(ctx context.Context) error {
	groups, err := s.api.FetchParkGroups(ctx)
	if err != nil {
		return err
	}

	// Every fetched park is excluded from deactivation, including parks of a
	// group whose lookup fails below; those just stay stale this pass.
	var seen []string
	for _, g := range groups {
		for _, summary := range g.Parks {
			seen = append(seen, summary.ID)
		}
	}

	var wg sync.WaitGroup
	for _, g := range groups {
		group, err := s.parkGroupRepo.FindByExternalID(ctx, g.ID)
		if err != nil || group == nil {
			s.logger.Warn("Park group not found for parks, skipping", "externalId", g.ID)
			continue
		}

		for _, summary := range g.Parks {
			wg.Add(1)
			go func(summary themeparks.ParkSummary, groupID string) {
				defer wg.Done()
				if err := s.syncOnePark(ctx, summary, groupID); err != nil {
					s.logger.Error("Failed to sync park", "externalId", summary.ID, "error", err.Error())
					s.metrics.ErrorsCount.WithLabelValues("sync_parks").Inc()
				}
			}(summary, group.ID)
		}
	}
	wg.Wait()

	if err := s.parkRepo.DeactivateMissing(ctx, seen); err != nil {
		return errors.Wrap(err, "deactivate missing parks")
	}

	s.logger.Info("Parks synced", "count", len(seen))
	return nil
}

func (s *SyncService) syncOnePark(ctx context.Context, summary themeparks.ParkSummary, groupID string) error {
	park := &entity.Park{
		ExternalID:  summary.ID,
		Name:        summary.Name,
		Slug:        utils.Slugify(summary.Name),
		ParkGroupID: groupID,
		IsActive:    true,
		LastSynced:  time.Now().UTC(),
	}

	// Enrichment is best effort: the coarse listing record is enough to
	// keep the park row alive.
	if detail, err := s.api.FetchPark(ctx, summary.ID); err == nil {
		park.Name = detail.Name
		park.Slug = utils.Slugify(detail.Name)
		park.Timezone = detail.Timezone
		if detail.Location != nil {
			park.Latitude = detail.Location.Latitude
			park.Longitude = detail.Location.Longitude
		}
	} else {
		s.logger.Warn("Park detail fetch failed, using listing data", "externalId", summary.ID, "error", err.Error())
	}

	if status, err := s.api.FetchCurrentParkStatus(ctx, summary.ID); err == nil && status != "" {
		park.OperatingStatus = status
	}

	if _, _, err := s.parkRepo.Upsert(ctx, park); err != nil {
		return err
	}
	s.metrics.EntitiesSynced.WithLabelValues("parks").Inc()
	return nil
}

// SyncAttractionsAndShows upserts every non-restaurant child of every park,
// backfills live statuses, and fully replaces show-time rows.
func (s *SyncService) SyncAttractionsAndShows(ctx context.Context) error {
	return s.forEachPark(ctx, "sync_attractions", s.syncParkAttractions)
}

func (s *SyncService) syncParkAttractions(ctx context.Context, park entity.Park) error {
	children, err := s.api.FetchParkEntities(ctx, park.ExternalID)
	if err != nil {
		return err
	}

	// Live data backfills statuses and carries shows that the static
	// children listing sometimes omits.
	statusByID := map[string]*entity.OperatingStatus{}
	var live *themeparks.LiveData
	if live, err = s.api.FetchLiveData(ctx, park.ExternalID); err == nil {
		for _, le := range live.Entities {
			if le.Status != nil {
				statusByID[le.ID] = le.Status
			}
		}
	} else {
		s.logger.Warn("Live data fetch failed, statuses not backfilled", "parkId", park.ExternalID, "error", err.Error())
		live = &themeparks.LiveData{}
	}

	// The fetched set decides deactivation: non-restaurant children plus
	// shows that only appear in live data. Upsert failures leave rows stale.
	seen := make([]string, 0, len(children))
	childSet := map[string]bool{}
	for _, child := range children {
		if child.EntityType == entity.EntityTypeRestaurant {
			continue
		}
		seen = append(seen, child.ID)
		childSet[child.ID] = true
	}
	for _, show := range live.Shows {
		if !childSet[show.ID] {
			seen = append(seen, show.ID)
		}
	}

	for _, child := range children {
		if child.EntityType == entity.EntityTypeRestaurant {
			continue
		}

		attraction := &entity.Attraction{
			ExternalID: child.ID,
			Name:       child.Name,
			Slug:       utils.Slugify(child.Name),
			EntityType: child.EntityType,
			Status:     statusByID[child.ID],
			ParkID:     park.ID,
			IsActive:   true,
			LastSynced: time.Now().UTC(),
		}
		if child.Location != nil {
			attraction.Latitude = child.Location.Latitude
			attraction.Longitude = child.Location.Longitude
		}

		id, _, err := s.attractionRepo.Upsert(ctx, attraction)
		if err != nil {
			s.logger.Error("Failed to upsert attraction", "externalId", child.ID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("sync_attractions").Inc()
			continue
		}
		s.metrics.EntitiesSynced.WithLabelValues("attractions").Inc()

		attraction.ID = id
		if _, err := s.recorder.RecordAttractionSnapshot(ctx, attraction); err != nil {
			s.logger.Warn("Failed to record attraction snapshot", "attractionId", id, "error", err.Error())
		}
	}

	// Shows that only appear in live data still get a row.
	for _, show := range live.Shows {
		if !childSet[show.ID] {
			attraction := &entity.Attraction{
				ExternalID: show.ID,
				Name:       show.Name,
				Slug:       utils.Slugify(show.Name),
				EntityType: entity.EntityTypeShow,
				Status:     statusByID[show.ID],
				ParkID:     park.ID,
				IsActive:   true,
				LastSynced: time.Now().UTC(),
			}
			if _, _, err := s.attractionRepo.Upsert(ctx, attraction); err != nil {
				s.logger.Error("Failed to upsert live-only show", "externalId", show.ID, "error", err.Error())
				continue
			}
			s.metrics.EntitiesSynced.WithLabelValues("attractions").Inc()
			childSet[show.ID] = true
		}

		if err := s.replaceShowTimes(ctx, show); err != nil {
			s.logger.Error("Failed to replace show times", "externalId", show.ID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("sync_show_times").Inc()
		}
	}

	if err := s.attractionRepo.DeactivateMissingForPark(ctx, park.ID, seen); err != nil {
		return errors.Wrap(err, "deactivate missing attractions")
	}
	return nil
}

func (s *SyncService) replaceShowTimes(ctx context.Context, show themeparks.ShowListing) error {
	attraction, err := s.attractionRepo.FindByExternalID(ctx, show.ID)
	if err != nil {
		return err
	}
	if attraction == nil {
		return errors.Errorf("show %s has no attraction row", show.ID)
	}

	times := make([]entity.ShowTime, 0, len(show.ShowTimes))
	for _, st := range show.ShowTimes {
		start, err := time.Parse(time.RFC3339, st.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, st.EndTime)
		if err != nil {
			end = start
		}
		times = append(times, entity.ShowTime{
			AttractionID: attraction.ID,
			StartTime:    start,
			EndTime:      end,
			ShowType:     st.ShowType,
			IsActive:     true,
			LastSynced:   time.Now().UTC(),
		})
	}

	return s.showTimeRepo.ReplaceForAttraction(ctx, attraction.ID, times)
}

// SyncRestaurants upserts the restaurant children of every park.
func (s *SyncService) SyncRestaurants(ctx context.Context) error {
	return s.forEachPark(ctx, "sync_restaurants", s.syncParkRestaurants)
}

func (s *SyncService) syncParkRestaurants(ctx context.Context, park entity.Park) error {
	children, err := s.api.FetchRestaurants(ctx, park.ExternalID)
	if err != nil {
		return err
	}

	// Deactivation keys on the fetched set; a failed upsert leaves the row
	// stale rather than deactivating it.
	seen := make([]string, 0, len(children))
	for _, child := range children {
		seen = append(seen, child.ID)
	}

	for _, child := range children {
		restaurant := &entity.Restaurant{
			ExternalID: child.ID,
			Name:       child.Name,
			Slug:       utils.Slugify(child.Name),
			ParkID:     park.ID,
			IsActive:   true,
			LastSynced: time.Now().UTC(),
		}
		if child.Location != nil {
			restaurant.Latitude = child.Location.Latitude
			restaurant.Longitude = child.Location.Longitude
		}

		id, _, err := s.restaurantRepo.Upsert(ctx, restaurant)
		if err != nil {
			s.logger.Error("Failed to upsert restaurant", "externalId", child.ID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("sync_restaurants").Inc()
			continue
		}
		s.metrics.EntitiesSynced.WithLabelValues("restaurants").Inc()

		restaurant.ID = id
		if _, err := s.recorder.RecordRestaurantSnapshot(ctx, restaurant); err != nil {
			s.logger.Warn("Failed to record restaurant snapshot", "restaurantId", id, "error", err.Error())
		}
	}

	if err := s.restaurantRepo.DeactivateMissingForPark(ctx, park.ID, seen); err != nil {
		return errors.Wrap(err, "deactivate missing restaurants")
	}
	return nil
}

// SyncSchedules upserts the operating calendar of every park. Parks run
// sequentially here: the schedule endpoint is the heaviest upstream call and
// hammering it in parallel trips rate limits.
func (s *SyncService) SyncSchedules(ctx context.Context) error {
	parks, err := s.parkRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "find parks")
	}

	for _, park := range parks {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.syncParkSchedule(ctx, park); err != nil {
			s.logger.Error("Failed to sync schedule", "parkId", park.ExternalID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("sync_schedules").Inc()
		}
	}
	return nil
}

func (s *SyncService) syncParkSchedule(ctx context.Context, park entity.Park) error {
	entries, err := s.api.FetchParkSchedule(ctx, park.ExternalID)
	if err != nil {
		return err
	}

	for _, item := range entries {
		date := utils.ExtractDate(item.OpeningTime)
		if date.IsZero() {
			date = utils.ExtractDate(item.Date)
		}
		if date.IsZero() {
			s.logger.Debug("Schedule entry without usable date, skipping", "parkId", park.ExternalID)
			continue
		}

		schedule := &entity.ParkSchedule{
			ParkID:       park.ID,
			Date:         date,
			OpeningTime:  utils.ExtractTime(item.OpeningTime),
			ClosingTime:  utils.ExtractTime(item.ClosingTime),
			ScheduleType: item.Type,
			Description:  item.Description,
			IsSpecial:    isSpecialSchedule(item.Type),
			LastSynced:   time.Now().UTC(),
		}

		id, _, err := s.parkScheduleRepo.Upsert(ctx, schedule)
		if err != nil {
			// Concurrent passes can race on (park, date); the row exists,
			// which is all we need.
			if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
				s.logger.Debug("Schedule row already exists", "parkId", park.ExternalID, "date", date.Format("2006-01-02"))
				continue
			}
			s.logger.Error("Failed to upsert schedule", "parkId", park.ExternalID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("sync_schedules").Inc()
			continue
		}
		s.metrics.EntitiesSynced.WithLabelValues("park_schedules").Inc()

		for _, offer := range item.Purchases {
			if err := s.syncPurchase(ctx, id, offer); err != nil {
				s.logger.Warn("Failed to sync purchase", "externalId", offer.ID, "error", err.Error())
			}
		}
	}
	return nil
}

func (s *SyncService) syncPurchase(ctx context.Context, scheduleID string, offer themeparks.PurchaseOffer) error {
	purchase := &entity.Purchase{
		ExternalID:     offer.ID,
		ParkScheduleID: scheduleID,
		Name:           offer.Name,
		Type:           offer.Type,
		PriceAmount:    offer.PriceAmount,
		PriceCurrency:  offer.PriceCurrency,
		PriceFormatted: offer.PriceFormatted,
		Available:      offer.Available,
		IsActive:       true,
		LastSynced:     time.Now().UTC(),
	}

	id, _, err := s.purchaseRepo.Upsert(ctx, purchase)
	if err != nil {
		return err
	}
	s.metrics.EntitiesSynced.WithLabelValues("purchases").Inc()

	purchase.ID = id
	_, err = s.recorder.RecordPurchaseSnapshot(ctx, purchase)
	return err
}

// SyncParkStatus refreshes every park's operating status and records a
// status snapshot when it changed.
func (s *SyncService) SyncParkStatus(ctx context.Context) error {
	err := s.forEachPark(ctx, "sync_park_status", func(ctx context.Context, park entity.Park) error {
		status, err := s.api.FetchCurrentParkStatus(ctx, park.ExternalID)
		if err != nil {
			return err
		}
		if status == "" {
			return nil
		}

		if err := s.parkRepo.UpdateOperatingStatus(ctx, park.ID, status, park.IsAtCapacity); err != nil {
			return errors.Wrap(err, "update operating status")
		}

		park.OperatingStatus = status
		_, err = s.recorder.RecordParkStatus(ctx, &park)
		return err
	})
	if err != nil {
		return err
	}

	s.metrics.SyncPasses.WithLabelValues("park_status").Inc()
	return nil
}

// SyncWaitTimes records the current queue observations of every park.
func (s *SyncService) SyncWaitTimes(ctx context.Context) error {
	err := s.forEachPark(ctx, "sync_wait_times", func(ctx context.Context, park entity.Park) error {
		live, err := s.api.FetchLiveData(ctx, park.ExternalID)
		if err != nil {
			return err
		}

		for _, obs := range live.WaitTimes {
			attraction, err := s.attractionRepo.FindByExternalID(ctx, obs.AttractionID)
			if err != nil || attraction == nil {
				continue
			}
			if _, err := s.recorder.RecordWaitTime(ctx, attraction.ID, obs.QueueType, obs.WaitTimeMinutes, obs.Status); err != nil {
				s.logger.Warn("Failed to record wait time", "attractionId", attraction.ID, "error", err.Error())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.SyncPasses.WithLabelValues("wait_times").Inc()
	return nil
}

// SyncAttractionStatus refreshes live statuses on attraction rows and
// records snapshots for the ones that changed.
func (s *SyncService) SyncAttractionStatus(ctx context.Context) error {
	err := s.forEachPark(ctx, "sync_attraction_status", func(ctx context.Context, park entity.Park) error {
		live, err := s.api.FetchLiveData(ctx, park.ExternalID)
		if err != nil {
			return err
		}

		for _, le := range live.Entities {
			if le.Status == nil {
				continue
			}
			attraction, err := s.attractionRepo.FindByExternalID(ctx, le.ID)
			if err != nil || attraction == nil {
				continue
			}
			if err := s.attractionRepo.UpdateStatus(ctx, attraction.ID, *le.Status); err != nil {
				s.logger.Warn("Failed to update attraction status", "attractionId", attraction.ID, "error", err.Error())
				continue
			}

			attraction.Status = le.Status
			if _, err := s.recorder.RecordAttractionSnapshot(ctx, attraction); err != nil {
				s.logger.Warn("Failed to record attraction snapshot", "attractionId", attraction.ID, "error", err.Error())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.SyncPasses.WithLabelValues("attraction_status").Inc()
	return nil
}

// UpdateParkLocations reverse-geocodes parks that have coordinates but no
// resolved country yet. Resolution runs in rate-limited batches; a park
// whose lookup fails is retried on the next pass.
func (s *SyncService) UpdateParkLocations(ctx context.Context) error {
	parks, err := s.parkRepo.FindNeedingLocation(ctx)
	if err != nil {
		return errors.Wrap(err, "find parks needing location")
	}
	if len(parks) == 0 {
		return nil
	}

	coords := make([]geocode.Coordinate, len(parks))
	for i, park := range parks {
		coords[i] = geocode.Coordinate{Latitude: *park.Latitude, Longitude: *park.Longitude}
	}

	locations := geocode.ResolveMany(ctx, s.resolver, coords, s.geocodeBatchDelay, s.geocodeBatchSize)

	updated := 0
	for i, loc := range locations {
		if loc.IsEmpty() {
			continue
		}
		park := parks[i]
		park.Country = loc.Country
		park.City = loc.City
		park.Continent = loc.Continent
		park.CountryCode = loc.CountryCode
		if err := s.parkRepo.Save(ctx, &park); err != nil {
			s.logger.Error("Failed to save park location", "parkId", park.ID, "error", err.Error())
			s.metrics.ErrorsCount.WithLabelValues("update_locations").Inc()
			continue
		}
		updated++
	}

	s.metrics.SyncPasses.WithLabelValues("locations").Inc()
	s.logger.Info("Park locations updated", "resolved", updated, "pending", len(parks)-updated)
	return nil
}

// forEachPark runs fn for every park concurrently and joins all of them.
// Per-park errors are logged and counted, never propagated.
func (s *SyncService) forEachPark(ctx context.Context, operation string, fn func(ctx context.Context, park entity.Park) error) error {
	parks, err := s.parkRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "find parks")
	}

	var wg sync.WaitGroup
	for _, park := range parks {
		wg.Add(1)
		go func(p entity.Park) {
			defer wg.Done()
			if err := fn(ctx, p); err != nil {
				s.logger.Error("Park sync step failed", "operation", operation, "parkId", p.ExternalID, "error", err.Error())
				s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
			}
		}(park)
	}
	wg.Wait()
	return nil
}

func isSpecialSchedule(t entity.ScheduleType) bool {
	switch t {
	case entity.ScheduleSpecialHours, entity.SchedulePrivateEvent, entity.ScheduleTicketedEvent:
		return true
	default:
		return false
	}
}
