package handlers

import (
	"coffee-chronicles/domain"
	"coffee-chronicles/internal/api/presenters"
	"coffee-chronicles/pkg/location"

	"github.com/gofiber/fiber/v2"
)

type (
	LocationHandler interface {
		SearchPlaces(c *fiber.Ctx) error
		GetPlaceDetails(c *fiber.Ctx) error
		GeocodeAddress(c *fiber.Ctx) error
	}

	locationHandler struct {
		locationService location.LocationService
	}
)

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &locationHandler{locationService: locationService}
}

func (h *locationHandler) SearchPlaces(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchPlaces,
			domain.NewValidationError("query", "query is required"))
	}

	results, err := h.locationService.SearchPlaces(c.Context(), query)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSearchPlaces, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"results": results}, fiber.StatusOK, domain.MessageSuccessSearchPlaces)
}

func (h *locationHandler) GetPlaceDetails(c *fiber.Ctx) error {
	placeID := c.Params("placeId")

	details, err := h.locationService.GetPlaceDetails(c.Context(), placeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetPlaceDetails, err)
	}

	return presenters.SuccessResponse(c, details, fiber.StatusOK, domain.MessageSuccessGetPlaceDetails)
}

func (h *locationHandler) GeocodeAddress(c *fiber.Ctx) error {
	address := c.Query("address")
	if address == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeocodeAddress,
			domain.NewValidationError("address", "address is required"))
	}

	cafeInfo, err := h.locationService.GeocodeAddress(c.Context(), address)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGeocodeAddress, err)
	}

	return presenters.SuccessResponse(c, cafeInfo, fiber.StatusOK, domain.MessageSuccessGeocodeAddress)
}
