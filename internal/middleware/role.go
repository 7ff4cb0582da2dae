package middleware

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route group at a minimum role rank. Fine-grained
// checks (who may touch whom) live in the services; this just keeps
// technicians out of admin surfaces entirely.
func RequireRole(minimum string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := tenant.GetActor(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("unauthorized"))
		}
		if authz.Rank(actor.Role) < authz.Rank(minimum) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("insufficient role"))
		}
		return c.Next()
	}
}
