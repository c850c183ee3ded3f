package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coffee-chronicles/domain"
	"coffee-chronicles/entities"
)

const googleMapsBaseURL = "https://maps.googleapis.com/maps/api"

type (
	// LocationService fronts the Google Maps Web Service APIs used by the
	// location picker.
	LocationService interface {
		SearchPlaces(ctx context.Context, query string) ([]domain.PlaceSearchResult, error)
		GetPlaceDetails(ctx context.Context, placeID string) (domain.CafeInfo, error)
		GeocodeAddress(ctx context.Context, address string) (domain.CafeInfo, error)
	}

	locationService struct {
		apiKey  string
		baseURL string
		client  *http.Client
	}
)

func NewLocationService(apiKey string) LocationService {
	return &locationService{
		apiKey:  apiKey,
		baseURL: googleMapsBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type placeResult struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Types []string `json:"types"`
}

func (s *locationService) SearchPlaces(ctx context.Context, query string) ([]domain.PlaceSearchResult, error) {
	// Bias the search towards cafes to cut down on noise
	lowered := strings.ToLower(query)
	if !strings.Contains(lowered, "cafe") && !strings.Contains(lowered, "coffee") {
		query = query + " cafe"
	}

	endpoint := fmt.Sprintf("%s/place/textsearch/json?query=%s&type=cafe&key=%s",
		s.baseURL, url.QueryEscape(query), s.apiKey)

	var body struct {
		Status  string        `json:"status"`
		Results []placeResult `json:"results"`
	}
	if err := s.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: status %s", domain.ErrPlaceSearchFailed, body.Status)
	}

	seen := make(map[string]bool)
	results := make([]domain.PlaceSearchResult, 0, len(body.Results))
	for _, place := range body.Results {
		if place.PlaceID == "" || place.Name == "" || place.FormattedAddress == "" {
			continue
		}
		if seen[place.PlaceID] {
			continue
		}
		seen[place.PlaceID] = true
		results = append(results, domain.PlaceSearchResult{
			PlaceID:          place.PlaceID,
			Name:             place.Name,
			FormattedAddress: place.FormattedAddress,
			Types:            orEmpty(place.Types),
		})
	}
	return results, nil
}

func (s *locationService) GetPlaceDetails(ctx context.Context, placeID string) (domain.CafeInfo, error) {
	endpoint := fmt.Sprintf("%s/place/details/json?place_id=%s&fields=place_id,name,formatted_address,geometry,types&key=%s",
		s.baseURL, url.QueryEscape(placeID), s.apiKey)

	var body struct {
		Status string      `json:"status"`
		Result placeResult `json:"result"`
	}
	if err := s.getJSON(ctx, endpoint, &body); err != nil {
		return domain.CafeInfo{}, err
	}
	if body.Status != "OK" {
		return domain.CafeInfo{}, fmt.Errorf("%w: status %s", domain.ErrPlaceDetailsFailed, body.Status)
	}

	place := body.Result
	if place.PlaceID == "" || place.Name == "" || place.FormattedAddress == "" {
		return domain.CafeInfo{}, domain.ErrPlaceDetailsIncomplete
	}

	return domain.CafeInfo{
		PlaceID:          place.PlaceID,
		Name:             place.Name,
		FormattedAddress: place.FormattedAddress,
		Coordinates: entities.Coordinates{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		},
		Types: orEmpty(place.Types),
	}, nil
}

func (s *locationService) GeocodeAddress(ctx context.Context, address string) (domain.CafeInfo, error) {
	endpoint := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		s.baseURL, url.QueryEscape(address), s.apiKey)

	var body struct {
		Status  string        `json:"status"`
		Results []placeResult `json:"results"`
	}
	if err := s.getJSON(ctx, endpoint, &body); err != nil {
		return domain.CafeInfo{}, err
	}
	if body.Status != "OK" {
		return domain.CafeInfo{}, fmt.Errorf("%w: status %s", domain.ErrGeocodeFailed, body.Status)
	}
	if len(body.Results) == 0 {
		return domain.CafeInfo{}, domain.ErrNoLocationFound
	}

	result := body.Results[0]
	return domain.CafeInfo{
		PlaceID:          result.PlaceID,
		Name:             address, // geocoded results keep the input address as the name
		FormattedAddress: result.FormattedAddress,
		Coordinates: entities.Coordinates{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		Types: orEmpty(result.Types),
	}, nil
}

func (s *locationService) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps API error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func orEmpty(types []string) []string {
	if types == nil {
		return []string{}
	}
	return types
}
