package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultBigDataCloudURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

var parenthesized = regexp.MustCompile(`\s*\(.*?\)`)

// BigDataCloudResolver reverse-geocodes coordinates against the free
// BigDataCloud client endpoint.
type BigDataCloudResolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewBigDataCloudResolver creates a resolver against the public endpoint.
func NewBigDataCloudResolver(timeout time.Duration) *BigDataCloudResolver {
	return &BigDataCloudResolver{
		baseURL:    defaultBigDataCloudURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewBigDataCloudResolverWithURL creates a resolver against a custom endpoint.
func NewBigDataCloudResolverWithURL(baseURL string, timeout time.Duration) *BigDataCloudResolver {
	return &BigDataCloudResolver{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type bigDataCloudResponse struct {
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Locality    string `json:"locality"`
	Continent   string `json:"continent"`
}

// Resolve looks up the coordinate. An empty country name counts as a miss.
func (r *BigDataCloudResolver) Resolve(ctx context.Context, lat, lon float64) (Location, error) {
	url := fmt.Sprintf("%s?latitude=%f&longitude=%f&localityLanguage=en", r.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Location{}, errors.Wrap(err, "bigdatacloud request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, errors.Errorf("bigdatacloud: unexpected status %d", resp.StatusCode)
	}

	var body bigDataCloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, errors.Wrap(err, "bigdatacloud decode")
	}

	if body.CountryName == "" {
		return Location{}, errors.New("bigdatacloud: no country in response")
	}

	city := body.City
	if city == "" {
		city = body.Locality
	}

	return Location{
		Country:     cleanCountryName(body.CountryName),
		City:        city,
		Continent:   body.Continent,
		CountryCode: body.CountryCode,
	}, nil
}

// cleanCountryName strips parenthesized qualifiers such as
// "France (the French Republic)".
func cleanCountryName(name string) string {
	return strings.TrimSpace(parenthesized.ReplaceAllString(name, ""))
}
