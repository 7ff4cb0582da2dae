package middleware

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("invalid or expired token"))
		},
	})
}
