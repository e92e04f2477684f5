package geocode

import "context"

// Location is a reverse-geocoded place description. Fields are empty when
// the provider could not determine them.
type Location struct {
	Country     string
	City        string
	Continent   string
	CountryCode string
}

// Coordinate is a latitude/longitude pair to resolve.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Resolver turns a coordinate into a Location.
type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64) (Location, error)
}

// IsEmpty reports whether no field of the location was resolved.
func (l Location) IsEmpty() bool {
	return l.Country == "" && l.City == "" && l.Continent == "" && l.CountryCode == ""
}
