package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PMTemplateHandler struct {
	templates *services.PMTemplateService
}

func NewPMTemplateHandler(templates *services.PMTemplateService) *PMTemplateHandler {
	return &PMTemplateHandler{templates: templates}
}

func (h *PMTemplateHandler) Create(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreatePMTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tmpl, err := h.templates.Create(companyID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(tmpl))
}

func (h *PMTemplateHandler) List(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	limit, offset := pageParams(c)
	resp, err := h.templates.List(companyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *PMTemplateHandler) Get(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	templateID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid template id")
	}

	tmpl, err := h.templates.Get(companyID, templateID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(tmpl))
}

func (h *PMTemplateHandler) Update(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	templateID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid template id")
	}

	var req dto.UpdatePMTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tmpl, err := h.templates.Update(companyID, templateID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(tmpl))
}

func (h *PMTemplateHandler) Delete(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	templateID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid template id")
	}

	if err := h.templates.Delete(companyID, templateID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "template deleted"}))
}
