package handlers

import (
	"coffee-chronicles/domain"
	"coffee-chronicles/internal/api/presenters"
	"coffee-chronicles/pkg/coffeedate"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CoffeeDateHandler interface {
		GetCoffeeDates(c *fiber.Ctx) error
		GetCoffeeDateDetails(c *fiber.Ctx) error
		CreateCoffeeDate(c *fiber.Ctx) error
		UpdateCoffeeDate(c *fiber.Ctx) error
		DeleteCoffeeDate(c *fiber.Ctx) error
		AddPhotos(c *fiber.Ctx) error
	}

	coffeeDateHandler struct {
		coffeeDateService coffeedate.CoffeeDateService
		validator         *validator.Validate
	}
)

func NewCoffeeDateHandler(coffeeDateService coffeedate.CoffeeDateService, validator *validator.Validate) CoffeeDateHandler {
	return &coffeeDateHandler{
		coffeeDateService: coffeeDateService,
		validator:         validator,
	}
}

func (h *coffeeDateHandler) GetCoffeeDates(c *fiber.Ctx) error {
	coffeeDates, err := h.coffeeDateService.GetAll(c.Context())
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCoffeeDates, err)
	}

	return presenters.SuccessResponse(c, coffeeDates, fiber.StatusOK, domain.MessageSuccessGetCoffeeDates)
}

func (h *coffeeDateHandler) GetCoffeeDateDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	coffeeDate, err := h.coffeeDateService.GetByID(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCoffeeDates, err)
	}
	if coffeeDate == nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetCoffeeDates, domain.ErrCoffeeDateNotFound)
	}

	return presenters.SuccessResponse(c, coffeeDate, fiber.StatusOK, domain.MessageSuccessGetCoffeeDates)
}

func (h *coffeeDateHandler) CreateCoffeeDate(c *fiber.Ctx) error {
	req := new(domain.CreateCoffeeDateRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCoffeeDate, err)
	}

	res, err := h.coffeeDateService.Create(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateCoffeeDate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCoffeeDate)
}

func (h *coffeeDateHandler) UpdateCoffeeDate(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.UpdateCoffeeDateRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.coffeeDateService.Update(c.Context(), id, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateCoffeeDate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCoffeeDate)
}

func (h *coffeeDateHandler) DeleteCoffeeDate(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.coffeeDateService.Delete(c.Context(), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteCoffeeDate, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCoffeeDate)
}

func (h *coffeeDateHandler) AddPhotos(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.AddPhotosRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddPhotos, err)
	}

	if err := h.coffeeDateService.AddPhotos(c.Context(), id, req.PhotoIDs); err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddPhotos, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAddPhotos)
}
