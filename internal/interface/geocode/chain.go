package geocode

import (
	"context"
	"sync"
	"time"

	"parksync-service/pkg/logger"
)

// ChainResolver tries each resolver in order and returns the first hit.
// It never fails: when every provider errors out it returns an empty
// Location so callers can persist whatever else they have.
type ChainResolver struct {
	resolvers []Resolver
	logger    logger.Logger
}

// NewChainResolver creates a chain over the given resolvers.
func NewChainResolver(log logger.Logger, resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{
		resolvers: resolvers,
		logger:    log,
	}
}

// Resolve tries each provider in order.
func (c *ChainResolver) Resolve(ctx context.Context, lat, lon float64) (Location, error) {
	for _, r := range c.resolvers {
		loc, err := r.Resolve(ctx, lat, lon)
		if err != nil {
			c.logger.Debug("Geocode provider failed, trying next", "lat", lat, "lon", lon, "error", err.Error())
			continue
		}
		if !loc.IsEmpty() {
			return loc, nil
		}
	}

	c.logger.Warn("All geocode providers failed", "lat", lat, "lon", lon)
	return Location{}, nil
}

// ResolveMany resolves coordinates in batches. Coordinates within a batch run
// concurrently; consecutive batch starts are at least delay apart to respect
// provider rate limits. Results are positionally aligned with coords, with a
// failed coordinate yielding an empty Location.
func ResolveMany(ctx context.Context, r Resolver, coords []Coordinate, delay time.Duration, batchSize int) []Location {
	if batchSize <= 0 {
		batchSize = 1
	}

	results := make([]Location, len(coords))

	for start := 0; start < len(coords); start += batchSize {
		if ctx.Err() != nil {
			break
		}

		end := start + batchSize
		if end > len(coords) {
			end = len(coords)
		}

		batchStart := time.Now()

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				loc, err := r.Resolve(ctx, coords[i].Latitude, coords[i].Longitude)
				if err != nil {
					return
				}
				results[i] = loc
			}(i)
		}
		wg.Wait()

		if end < len(coords) {
			if remaining := delay - time.Since(batchStart); remaining > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(remaining):
				}
			}
		}
	}

	return results
}
