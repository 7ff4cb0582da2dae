package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserAdminHandler struct {
	userAdmin *services.UserAdminService
}

func NewUserAdminHandler(userAdmin *services.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{userAdmin: userAdmin}
}

func (h *UserAdminHandler) List(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	limit, offset := pageParams(c)
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	resp, err := h.userAdmin.List(actor, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *UserAdminHandler) Get(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	userID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	resp, err := h.userAdmin.Get(actor, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *UserAdminHandler) Update(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	userID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.userAdmin.Update(actor, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *UserAdminHandler) ToggleStatus(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	userID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	resp, err := h.userAdmin.ToggleStatus(actor, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *UserAdminHandler) Delete(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}

	userID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.userAdmin.Delete(actor, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "user deleted"}))
}
