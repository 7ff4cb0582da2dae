package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WorkOrderHandler struct {
	orders *services.WorkOrderService
}

func NewWorkOrderHandler(orders *services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{orders: orders}
}

func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	order, err := h.orders.Create(companyID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(order))
}

func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	truckID, err := optionalQueryUUID(c, "truck_id")
	if err != nil {
		return badRequest(c, "invalid truck_id")
	}

	limit, offset := pageParams(c)
	resp, err := h.orders.List(companyID, truckID, c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *WorkOrderHandler) Get(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orderID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid work order id")
	}

	order, err := h.orders.Get(companyID, orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(order))
}

func (h *WorkOrderHandler) Update(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orderID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid work order id")
	}

	var req dto.UpdateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	order, err := h.orders.Update(companyID, orderID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(order))
}

func (h *WorkOrderHandler) Delete(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orderID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid work order id")
	}

	if err := h.orders.Delete(companyID, orderID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "work order deleted"}))
}

func (h *WorkOrderHandler) AddLineItem(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orderID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid work order id")
	}

	var req dto.CreateLineItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	item, err := h.orders.AddLineItem(companyID, orderID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(item))
}

func (h *WorkOrderHandler) DeleteLineItem(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orderID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid work order id")
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return badRequest(c, "invalid line item id")
	}

	if err := h.orders.DeleteLineItem(companyID, orderID, itemID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "line item deleted"}))
}
