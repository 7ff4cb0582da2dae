package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customers *services.CustomerService
}

func NewCustomerHandler(customers *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	customer, err := h.customers.Create(companyID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(customer))
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	limit, offset := pageParams(c)
	resp, err := h.customers.List(companyID, c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	customerID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid customer id")
	}

	customer, err := h.customers.Get(companyID, customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(customer))
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	customerID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid customer id")
	}

	var req dto.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	customer, err := h.customers.Update(companyID, customerID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(customer))
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	customerID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid customer id")
	}

	if err := h.customers.Delete(companyID, customerID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "customer deleted"}))
}
