package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"parksync-service/internal/domain/entity"
	"parksync-service/internal/domain/repository"
	"parksync-service/internal/interface/geocode"
	"parksync-service/internal/interface/themeparks"
	"parksync-service/pkg/metrics"
)

// Shared across the package's tests: prometheus collectors register
// globally and must only be created once per test binary.
var testMetrics = metrics.NewMetrics("parksync_test")

// In-memory repository fakes. They mirror the semantics of the real
// implementations: upserts key on external id and reuse ids, deactivation
// skips empty seen sets, history lookups return nil when no row exists.

type memParkGroupRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.ParkGroup
}

func newMemParkGroupRepo() *memParkGroupRepo {
	return &memParkGroupRepo{rows: map[string]*entity.ParkGroup{}}
}

func (r *memParkGroupRepo) Upsert(ctx context.Context, group *entity.ParkGroup) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[group.ExternalID]; ok {
		group.ID = existing.ID
		copied := *group
		r.rows[group.ExternalID] = &copied
		return existing.ID, false, nil
	}
	group.ID = uuid.NewString()
	copied := *group
	r.rows[group.ExternalID] = &copied
	return group.ID, true, nil
}

func (r *memParkGroupRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.ParkGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[externalID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (r *memParkGroupRepo) DeactivateMissing(ctx context.Context, seen []string) error {
	if len(seen) == 0 {
		return nil
	}
	seenSet := map[string]bool{}
	for _, id := range seen {
		seenSet[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for extID, row := range r.rows {
		if !seenSet[extID] {
			row.IsActive = false
		}
	}
	return nil
}

type memParkRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Park
}

func newMemParkRepo() *memParkRepo {
	return &memParkRepo{rows: map[string]*entity.Park{}}
}

func (r *memParkRepo) Upsert(ctx context.Context, park *entity.Park) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[park.ExternalID]; ok {
		park.ID = existing.ID
		if park.Country == "" {
			park.Country = existing.Country
			park.City = existing.City
			park.Continent = existing.Continent
			park.CountryCode = existing.CountryCode
		}
		copied := *park
		r.rows[park.ExternalID] = &copied
		return existing.ID, false, nil
	}
	park.ID = uuid.NewString()
	copied := *park
	r.rows[park.ExternalID] = &copied
	return park.ID, true, nil
}

func (r *memParkRepo) FindAll(ctx context.Context) ([]entity.Park, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Park
	for _, row := range r.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *memParkRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.Park, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[externalID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (r *memParkRepo) Save(ctx context.Context, park *entity.Park) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *park
	r.rows[park.ExternalID] = &copied
	return nil
}

func (r *memParkRepo) UpdateOperatingStatus(ctx context.Context, id string, status string, atCapacity bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.OperatingStatus = status
			row.IsAtCapacity = atCapacity
			row.LastSynced = time.Now().UTC()
			return nil
		}
	}
	return errors.New("park not found")
}

func (r *memParkRepo) FindNeedingLocation(ctx context.Context) ([]entity.Park, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Park
	for _, row := range r.rows {
		if row.Latitude != nil && row.Longitude != nil && row.Country == "" {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *memParkRepo) DeactivateMissing(ctx context.Context, seen []string) error {
	if len(seen) == 0 {
		return nil
	}
	seenSet := map[string]bool{}
	for _, id := range seen {
		seenSet[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for extID, row := range r.rows {
		if !seenSet[extID] {
			row.IsActive = false
		}
	}
	return nil
}

type memAttractionRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Attraction
}

func newMemAttractionRepo() *memAttractionRepo {
	return &memAttractionRepo{rows: map[string]*entity.Attraction{}}
}

func (r *memAttractionRepo) Upsert(ctx context.Context, attraction *entity.Attraction) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[attraction.ExternalID]; ok {
		attraction.ID = existing.ID
		if attraction.Status == nil {
			attraction.Status = existing.Status
		}
		copied := *attraction
		r.rows[attraction.ExternalID] = &copied
		return existing.ID, false, nil
	}
	attraction.ID = uuid.NewString()
	copied := *attraction
	r.rows[attraction.ExternalID] = &copied
	return attraction.ID, true, nil
}

func (r *memAttractionRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.Attraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[externalID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (r *memAttractionRepo) UpdateStatus(ctx context.Context, id string, status entity.OperatingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = &status
			row.LastSynced = time.Now().UTC()
			return nil
		}
	}
	return errors.New("attraction not found")
}

func (r *memAttractionRepo) CountByStatus(ctx context.Context, parkID string) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	open, closed := 0, 0
	for _, row := range r.rows {
		if row.ParkID != parkID || !row.IsActive || row.Status == nil {
			continue
		}
		if *row.Status == entity.StatusOperating {
			open++
		} else {
			closed++
		}
	}
	return open, closed, nil
}

func (r *memAttractionRepo) DeactivateMissingForPark(ctx context.Context, parkID string, seen []string) error {
	if len(seen) == 0 {
		return nil
	}
	seenSet := map[string]bool{}
	for _, id := range seen {
		seenSet[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for extID, row := range r.rows {
		if row.ParkID == parkID && !seenSet[extID] {
			row.IsActive = false
		}
	}
	return nil
}

type memRestaurantRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Restaurant
}

func newMemRestaurantRepo() *memRestaurantRepo {
	return &memRestaurantRepo{rows: map[string]*entity.Restaurant{}}
}

func (r *memRestaurantRepo) Upsert(ctx context.Context, restaurant *entity.Restaurant) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[restaurant.ExternalID]; ok {
		restaurant.ID = existing.ID
		copied := *restaurant
		r.rows[restaurant.ExternalID] = &copied
		return existing.ID, false, nil
	}
	restaurant.ID = uuid.NewString()
	copied := *restaurant
	r.rows[restaurant.ExternalID] = &copied
	return restaurant.ID, true, nil
}

func (r *memRestaurantRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[externalID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (r *memRestaurantRepo) DeactivateMissingForPark(ctx context.Context, parkID string, seen []string) error {
	if len(seen) == 0 {
		return nil
	}
	seenSet := map[string]bool{}
	for _, id := range seen {
		seenSet[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for extID, row := range r.rows {
		if row.ParkID == parkID && !seenSet[extID] {
			row.IsActive = false
		}
	}
	return nil
}

type memShowTimeRepo struct {
	mu   sync.Mutex
	rows map[string][]entity.ShowTime
}

func newMemShowTimeRepo() *memShowTimeRepo {
	return &memShowTimeRepo{rows: map[string][]entity.ShowTime{}}
}

func (r *memShowTimeRepo) ReplaceForAttraction(ctx context.Context, attractionID string, times []entity.ShowTime) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.ShowTime, len(times))
	for i, st := range times {
		st.ID = uuid.NewString()
		out[i] = st
	}
	r.rows[attractionID] = out
	return nil
}

func (r *memShowTimeRepo) FindByAttraction(ctx context.Context, attractionID string) ([]entity.ShowTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.ShowTime(nil), r.rows[attractionID]...), nil
}

type scheduleKey struct {
	parkID string
	date   string
}

type memParkScheduleRepo struct {
	mu      sync.Mutex
	rows    map[scheduleKey]*entity.ParkSchedule
	failDup map[scheduleKey]bool
}

func newMemParkScheduleRepo() *memParkScheduleRepo {
	return &memParkScheduleRepo{
		rows:    map[scheduleKey]*entity.ParkSchedule{},
		failDup: map[scheduleKey]bool{},
	}
}

func (r *memParkScheduleRepo) Upsert(ctx context.Context, schedule *entity.ParkSchedule) (string, bool, error) {
	key := scheduleKey{parkID: schedule.ParkID, date: schedule.Date.Format("2006-01-02")}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDup[key] {
		return "", false, errors.New(`ERROR: duplicate key value violates unique constraint "uidx_park_schedules_park_date"`)
	}
	if existing, ok := r.rows[key]; ok {
		schedule.ID = existing.ID
		copied := *schedule
		r.rows[key] = &copied
		return existing.ID, false, nil
	}
	schedule.ID = uuid.NewString()
	copied := *schedule
	r.rows[key] = &copied
	return schedule.ID, true, nil
}

func (r *memParkScheduleRepo) FindByParkAndDate(ctx context.Context, parkID string, date time.Time) (*entity.ParkSchedule, error) {
	key := scheduleKey{parkID: parkID, date: date.Format("2006-01-02")}
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[key]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

type memPurchaseRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Purchase
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{rows: map[string]*entity.Purchase{}}
}

func (r *memPurchaseRepo) Upsert(ctx context.Context, purchase *entity.Purchase) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[purchase.ExternalID]; ok {
		purchase.ID = existing.ID
		copied := *purchase
		r.rows[purchase.ExternalID] = &copied
		return existing.ID, false, nil
	}
	purchase.ID = uuid.NewString()
	copied := *purchase
	r.rows[purchase.ExternalID] = &copied
	return purchase.ID, true, nil
}

func (r *memPurchaseRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[externalID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

type memWaitTimeRepo struct {
	mu    sync.Mutex
	rows  []*entity.WaitTime
	stats repository.WaitStats
}

func newMemWaitTimeRepo() *memWaitTimeRepo {
	return &memWaitTimeRepo{}
}

func (r *memWaitTimeRepo) FindLatest(ctx context.Context, attractionID string, queueType entity.QueueType) (*entity.WaitTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.WaitTime
	for _, row := range r.rows {
		if row.AttractionID != attractionID || row.QueueType != queueType {
			continue
		}
		if latest == nil || row.RecordedAt.After(latest.RecordedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memWaitTimeRepo) Insert(ctx context.Context, waitTime *entity.WaitTime) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *waitTime
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *memWaitTimeRepo) DeactivateOthers(ctx context.Context, attractionID string, queueType entity.QueueType, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.AttractionID == attractionID && row.QueueType == queueType && row.ID != keepID {
			row.IsActive = false
		}
	}
	return nil
}

func (r *memWaitTimeRepo) ActiveStatsForPark(ctx context.Context, parkID string) (repository.WaitStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats, nil
}

func (r *memWaitTimeRepo) activeRows(attractionID string, queueType entity.QueueType) []*entity.WaitTime {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WaitTime
	for _, row := range r.rows {
		if row.AttractionID == attractionID && row.QueueType == queueType && row.IsActive {
			out = append(out, row)
		}
	}
	return out
}

type memParkStatusHistoryRepo struct {
	mu   sync.Mutex
	rows []*entity.ParkStatusHistory
}

func newMemParkStatusHistoryRepo() *memParkStatusHistoryRepo {
	return &memParkStatusHistoryRepo{}
}

func (r *memParkStatusHistoryRepo) FindLatest(ctx context.Context, parkID string) (*entity.ParkStatusHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.ParkStatusHistory
	for _, row := range r.rows {
		if row.ParkID != parkID {
			continue
		}
		if latest == nil || row.RecordedAt.After(latest.RecordedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memParkStatusHistoryRepo) Insert(ctx context.Context, row *entity.ParkStatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *row
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *memParkStatusHistoryRepo) DeactivateOthers(ctx context.Context, parkID string, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ParkID == parkID && row.ID != keepID {
			row.IsActive = false
		}
	}
	return nil
}

type memAttractionHistoryRepo struct {
	mu   sync.Mutex
	rows []*entity.AttractionHistory
}

func newMemAttractionHistoryRepo() *memAttractionHistoryRepo {
	return &memAttractionHistoryRepo{}
}

func (r *memAttractionHistoryRepo) FindLatest(ctx context.Context, attractionID string) (*entity.AttractionHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.AttractionHistory
	for _, row := range r.rows {
		if row.AttractionID != attractionID {
			continue
		}
		if latest == nil || row.RecordedAt.After(latest.RecordedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memAttractionHistoryRepo) Insert(ctx context.Context, row *entity.AttractionHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *row
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *memAttractionHistoryRepo) DeactivateOthers(ctx context.Context, attractionID string, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.AttractionID == attractionID && row.ID != keepID {
			row.IsActive = false
		}
	}
	return nil
}

type memRestaurantHistoryRepo struct {
	mu   sync.Mutex
	rows []*entity.RestaurantHistory
}

func newMemRestaurantHistoryRepo() *memRestaurantHistoryRepo {
	return &memRestaurantHistoryRepo{}
}

func (r *memRestaurantHistoryRepo) FindLatest(ctx context.Context, restaurantID string) (*entity.RestaurantHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.RestaurantHistory
	for _, row := range r.rows {
		if row.RestaurantID != restaurantID {
			continue
		}
		if latest == nil || row.RecordedAt.After(latest.RecordedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memRestaurantHistoryRepo) Insert(ctx context.Context, row *entity.RestaurantHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *row
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *memRestaurantHistoryRepo) DeactivateOthers(ctx context.Context, restaurantID string, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.RestaurantID == restaurantID && row.ID != keepID {
			row.IsActive = false
		}
	}
	return nil
}

type memPurchaseHistoryRepo struct {
	mu   sync.Mutex
	rows []*entity.PurchaseHistory
}

func newMemPurchaseHistoryRepo() *memPurchaseHistoryRepo {
	return &memPurchaseHistoryRepo{}
}

func (r *memPurchaseHistoryRepo) FindLatest(ctx context.Context, purchaseID string) (*entity.PurchaseHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.PurchaseHistory
	for _, row := range r.rows {
		if row.PurchaseID != purchaseID {
			continue
		}
		if latest == nil || row.RecordedAt.After(latest.RecordedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memPurchaseHistoryRepo) Insert(ctx context.Context, row *entity.PurchaseHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *row
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *memPurchaseHistoryRepo) DeactivateOthers(ctx context.Context, purchaseID string, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.PurchaseID == purchaseID && row.ID != keepID {
			row.IsActive = false
		}
	}
	return nil
}

// fakeParksAPI serves canned upstream data.
type fakeParksAPI struct {
	groups      []themeparks.ParkGroup
	details     map[string]*themeparks.ParkDetail
	children    map[string][]themeparks.ChildEntity
	live        map[string]*themeparks.LiveData
	schedules   map[string][]themeparks.ScheduleEntry
	statuses    map[string]string
	detailErr   map[string]error
	liveErr     map[string]error
	scheduleErr map[string]error
}

func newFakeParksAPI() *fakeParksAPI {
	return &fakeParksAPI{
		details:     map[string]*themeparks.ParkDetail{},
		children:    map[string][]themeparks.ChildEntity{},
		live:        map[string]*themeparks.LiveData{},
		schedules:   map[string][]themeparks.ScheduleEntry{},
		statuses:    map[string]string{},
		detailErr:   map[string]error{},
		liveErr:     map[string]error{},
		scheduleErr: map[string]error{},
	}
}

func (f *fakeParksAPI) FetchParkGroups(ctx context.Context) ([]themeparks.ParkGroup, error) {
	return f.groups, nil
}

func (f *fakeParksAPI) FetchPark(ctx context.Context, parkID string) (*themeparks.ParkDetail, error) {
	if err := f.detailErr[parkID]; err != nil {
		return nil, err
	}
	if d, ok := f.details[parkID]; ok {
		return d, nil
	}
	return nil, errors.Errorf("no detail for %s", parkID)
}

func (f *fakeParksAPI) FetchParkEntities(ctx context.Context, parkID string) ([]themeparks.ChildEntity, error) {
	return f.children[parkID], nil
}

func (f *fakeParksAPI) FetchRestaurants(ctx context.Context, parkID string) ([]themeparks.ChildEntity, error) {
	var out []themeparks.ChildEntity
	for _, c := range f.children[parkID] {
		if c.EntityType == entity.EntityTypeRestaurant {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeParksAPI) FetchLiveData(ctx context.Context, parkID string) (*themeparks.LiveData, error) {
	if err := f.liveErr[parkID]; err != nil {
		return nil, err
	}
	if l, ok := f.live[parkID]; ok {
		return l, nil
	}
	return &themeparks.LiveData{}, nil
}

func (f *fakeParksAPI) FetchParkSchedule(ctx context.Context, parkID string) ([]themeparks.ScheduleEntry, error) {
	if err := f.scheduleErr[parkID]; err != nil {
		return nil, err
	}
	return f.schedules[parkID], nil
}

func (f *fakeParksAPI) FetchCurrentParkStatus(ctx context.Context, parkID string) (string, error) {
	return f.statuses[parkID], nil
}

// Flaky wrappers simulate transient store failures on top of the in-memory
// fakes, for exercising per-item error isolation.

type flakyParkRepo struct {
	*memParkRepo
	failExternalID string
}

func (r *flakyParkRepo) Upsert(ctx context.Context, park *entity.Park) (string, bool, error) {
	if park.ExternalID == r.failExternalID {
		return "", false, errors.New("store unavailable")
	}
	return r.memParkRepo.Upsert(ctx, park)
}

type flakyAttractionRepo struct {
	*memAttractionRepo
	failExternalID string
}

func (r *flakyAttractionRepo) Upsert(ctx context.Context, attraction *entity.Attraction) (string, bool, error) {
	if attraction.ExternalID == r.failExternalID {
		return "", false, errors.New("store unavailable")
	}
	return r.memAttractionRepo.Upsert(ctx, attraction)
}

type flakyParkGroupRepo struct {
	*memParkGroupRepo
	failFind bool
}

func (r *flakyParkGroupRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.ParkGroup, error) {
	if r.failFind {
		return nil, errors.New("store unavailable")
	}
	return r.memParkGroupRepo.FindByExternalID(ctx, externalID)
}

// fixedResolver resolves every coordinate to the same location, or to
// nothing when failAll is set.
type fixedResolver struct {
	loc     geocode.Location
	failAll bool
}

func (f *fixedResolver) Resolve(ctx context.Context, lat, lon float64) (geocode.Location, error) {
	if f.failAll {
		return geocode.Location{}, nil
	}
	return f.loc, nil
}
