package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.authService.Logout(&req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "logged out"}))
}

// RequestAuthEmail is the public reset-password / magic-link entry
// point. The reply is identical for every input so account existence
// never leaks.
func (h *AuthHandler) RequestAuthEmail(c *fiber.Ctx) error {
	var req dto.AuthEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "email is required")
	}
	if req.Action != services.AuthEmailReset && req.Action != services.AuthEmailMagicLink {
		return badRequest(c, "unknown action")
	}

	h.authService.RequestAuthEmail(req.Action, req.Email)

	return c.JSON(dto.OK(fiber.Map{
		"message": "If an account exists for that address, an email has been sent.",
	}))
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.authService.Profile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}
