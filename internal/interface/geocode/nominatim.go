package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/reverse"

// NominatimResolver reverse-geocodes coordinates against the OpenStreetMap
// Nominatim service. It is the fallback provider and should be called at a
// low rate.
type NominatimResolver struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimResolver creates a resolver against the public endpoint.
func NewNominatimResolver(userAgent string, timeout time.Duration) *NominatimResolver {
	return &NominatimResolver{
		baseURL:    defaultNominatimURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewNominatimResolverWithURL creates a resolver against a custom endpoint.
func NewNominatimResolverWithURL(baseURL, userAgent string, timeout time.Duration) *NominatimResolver {
	return &NominatimResolver{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nominatimResponse struct {
	Address struct {
		Country      string `json:"country"`
		CountryCode  string `json:"country_code"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
	} `json:"address"`
}

// Resolve looks up the coordinate. The city is taken from the most specific
// of city, town, village, and municipality.
func (r *NominatimResolver) Resolve(ctx context.Context, lat, lon float64) (Location, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&format=json&accept-language=en", r.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Location{}, errors.Wrap(err, "nominatim request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, errors.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, errors.Wrap(err, "nominatim decode")
	}

	if body.Address.Country == "" {
		return Location{}, errors.New("nominatim: no country in response")
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	if city == "" {
		city = body.Address.Municipality
	}

	code := strings.ToUpper(body.Address.CountryCode)

	return Location{
		Country:     cleanCountryName(body.Address.Country),
		City:        city,
		Continent:   continentForCountryCode(code),
		CountryCode: code,
	}, nil
}

// Nominatim reports no continent, so derive it from the ISO country code.
var countryContinents = map[string]string{
	"US": "North America",
	"CA": "North America",
	"MX": "North America",
	"CU": "North America",
	"DO": "North America",
	"PA": "North America",
	"CR": "North America",
	"GT": "North America",

	"BR": "South America",
	"AR": "South America",
	"CL": "South America",
	"CO": "South America",
	"PE": "South America",
	"EC": "South America",
	"UY": "South America",
	"VE": "South America",

	"GB": "Europe",
	"FR": "Europe",
	"DE": "Europe",
	"ES": "Europe",
	"IT": "Europe",
	"NL": "Europe",
	"BE": "Europe",
	"AT": "Europe",
	"CH": "Europe",
	"DK": "Europe",
	"SE": "Europe",
	"NO": "Europe",
	"FI": "Europe",
	"PL": "Europe",
	"CZ": "Europe",
	"PT": "Europe",
	"IE": "Europe",
	"HU": "Europe",
	"RO": "Europe",
	"GR": "Europe",
	"TR": "Europe",
	"RU": "Europe",
	"UA": "Europe",

	"CN": "Asia",
	"JP": "Asia",
	"KR": "Asia",
	"HK": "Asia",
	"TW": "Asia",
	"SG": "Asia",
	"MY": "Asia",
	"TH": "Asia",
	"VN": "Asia",
	"PH": "Asia",
	"ID": "Asia",
	"IN": "Asia",
	"AE": "Asia",
	"SA": "Asia",
	"QA": "Asia",
	"IL": "Asia",

	"AU": "Oceania",
	"NZ": "Oceania",

	"ZA": "Africa",
	"EG": "Africa",
	"MA": "Africa",
	"NG": "Africa",
	"KE": "Africa",
	"TN": "Africa",
}

func continentForCountryCode(code string) string {
	return countryContinents[code]
}
