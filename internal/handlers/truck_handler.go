package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type TruckHandler struct {
	trucks *services.TruckService
}

func NewTruckHandler(trucks *services.TruckService) *TruckHandler {
	return &TruckHandler{trucks: trucks}
}

func (h *TruckHandler) Create(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreateTruckRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	truck, err := h.trucks.Create(companyID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(truck))
}

func (h *TruckHandler) List(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	customerID, err := optionalQueryUUID(c, "customer_id")
	if err != nil {
		return badRequest(c, "invalid customer_id")
	}

	limit, offset := pageParams(c)
	resp, err := h.trucks.List(companyID, customerID, c.Query("status"), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *TruckHandler) Get(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	truckID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid truck id")
	}

	truck, err := h.trucks.Get(companyID, truckID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(truck))
}

func (h *TruckHandler) Update(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	truckID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid truck id")
	}

	var req dto.UpdateTruckRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	truck, err := h.trucks.Update(companyID, truckID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(truck))
}

// Delete removes the truck and cascades to notes, chat history, work
// orders, and invoices.
func (h *TruckHandler) Delete(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	truckID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid truck id")
	}

	if err := h.trucks.Delete(companyID, truckID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "truck deleted"}))
}

// Notes

func (h *TruckHandler) ListNotes(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	truckID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid truck id")
	}

	notes, err := h.trucks.ListNotes(companyID, truckID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(notes))
}

func (h *TruckHandler) AddNote(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	truckID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid truck id")
	}

	authorID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	note, err := h.trucks.AddNote(companyID, truckID, authorID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(note))
}

func (h *TruckHandler) DeleteNote(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	noteID, err := paramUUID(c, "noteId")
	if err != nil {
		return badRequest(c, "invalid note id")
	}

	if err := h.trucks.DeleteNote(companyID, noteID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "note deleted"}))
}
