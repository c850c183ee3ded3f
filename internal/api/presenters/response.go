package presenters

import (
	"errors"

	"coffee-chronicles/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		res.Field = validationErr.Field
	}
	return c.Status(code).JSON(res)
}

// HandleError maps the domain error taxonomy onto HTTP statuses.
func HandleError(c *fiber.Ctx, message string, err error) error {
	var validationErr *domain.ValidationError
	var dataAccessErr *domain.DataAccessError

	switch {
	case errors.As(err, &validationErr):
		return ErrorResponse(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, domain.ErrCoffeeDateNotFound), errors.Is(err, domain.ErrPhotoNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return ErrorResponse(c, fiber.StatusUnauthorized, message, err)
	case errors.As(err, &dataAccessErr):
		return ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	default:
		return ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}
