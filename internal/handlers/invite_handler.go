package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InviteHandler struct {
	inviteService *services.InviteService
}

func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// Create invites a user into a company. Admin-only; the permission
// matrix is enforced in the service.
func (h *InviteHandler) Create(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.inviteService.CreateInvite(actor, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(resp))
}

// Validate is public: the invited user checks their token before
// choosing a password.
func (h *InviteHandler) Validate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return badRequest(c, "token is required")
	}

	resp, err := h.inviteService.ValidateInvite(token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

// SetPassword is public: consumes the token and activates the account.
func (h *InviteHandler) SetPassword(c *fiber.Ctx) error {
	var req dto.SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Token == "" {
		return badRequest(c, "token is required")
	}

	if err := h.inviteService.SetPassword(req.Token, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "password set"}))
}

func (h *InviteHandler) Resend(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	userID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	resp, err := h.inviteService.ResendInvite(actor, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}
