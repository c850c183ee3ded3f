package handlers

import (
	"coffee-chronicles/domain"
	"coffee-chronicles/internal/api/presenters"
	"coffee-chronicles/internal/middleware"
	"coffee-chronicles/pkg/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Verify(c *fiber.Ctx) error
	}

	authHandler struct {
		authService auth.AuthService
		validator   *validator.Validate
	}
)

func NewAuthHandler(authService auth.AuthService, validator *validator.Validate) AuthHandler {
	return &authHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.authService.Login(req.Password)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *authHandler) Logout(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token != "" {
		h.authService.Logout(token)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *authHandler) Verify(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedVerify, domain.ErrTokenNotFound)
	}

	if err := h.authService.Verify(token); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedVerify, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessVerify)
}
