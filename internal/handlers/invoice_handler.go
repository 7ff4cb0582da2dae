package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	invoices *services.InvoiceService
}

func NewInvoiceHandler(invoices *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	invoice, err := h.invoices.Create(companyID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(invoice))
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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
	resp, err := h.invoices.List(companyID, customerID, c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	invoiceID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid invoice id")
	}

	invoice, err := h.invoices.Get(companyID, invoiceID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(invoice))
}

// SetStatus moves an invoice through draft → sent → paid, or voids it.
func (h *InvoiceHandler) SetStatus(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	invoiceID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid invoice id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "status is required")
	}

	invoice, err := h.invoices.SetStatus(companyID, invoiceID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(invoice))
}

func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	invoiceID, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "invalid invoice id")
	}

	if err := h.invoices.Delete(companyID, invoiceID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "invoice deleted"}))
}
