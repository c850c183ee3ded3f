package domain

import (
	"errors"

	"coffee-chronicles/entities"
)

var (
	MessageSuccessSearchPlaces    = "places retrieved successfully"
	MessageSuccessGetPlaceDetails = "place details retrieved successfully"
	MessageSuccessGeocodeAddress  = "address geocoded successfully"

	MessageFailedSearchPlaces    = "failed to search places"
	MessageFailedGetPlaceDetails = "failed to retrieve place details"
	MessageFailedGeocodeAddress  = "failed to geocode address"

	ErrPlaceSearchFailed      = errors.New("place search failed")
	ErrPlaceDetailsFailed     = errors.New("place details request failed")
	ErrPlaceDetailsIncomplete = errors.New("incomplete place details received")
	ErrGeocodeFailed          = errors.New("geocoding failed")
	ErrNoLocationFound        = errors.New("no location found for address")
)

type PlaceSearchResult struct {
	PlaceID          string   `json:"placeId"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formattedAddress"`
	Types            []string `json:"types"`
}

// CafeInfo results from the places provider reuse the stored shape directly.
type CafeInfo = entities.CafeInfo
