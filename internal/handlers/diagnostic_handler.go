package handlers

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DiagnosticHandler struct {
	diagnostics *services.DiagnosticService
}

func NewDiagnosticHandler(diagnostics *services.DiagnosticService) *DiagnosticHandler {
	return &DiagnosticHandler{diagnostics: diagnostics}
}

// Generate runs the diagnostic pipeline for a work order. Provider
// failures never surface as HTTP errors: the response is always 200
// with either the generated report or the placeholder, flagged by
// fallback.
func (h *DiagnosticHandler) Generate(c *fiber.Ctx) error {
	actor, ok := requireActor(c)
	if !ok {
		return unauthorized(c)
	}
	companyID, err := companyScope(c, actor)
	if err != nil {
		return badRequest(c, err.Error())
	}

	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.GenerateDiagnosticRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.WorkOrderID == uuid.Nil {
		return badRequest(c, "work_order_id is required")
	}

	result, err := h.diagnostics.Generate(companyID, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(result))
}
