package handlers

import (
	"errors"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/services"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps service sentinels onto HTTP statuses inside the
// standard envelope. Unknown errors become an opaque 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTokenNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrTokenUsed),
		errors.Is(err, services.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrTokenExpired):
		return c.Status(fiber.StatusGone).JSON(dto.Fail(err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("internal server error"))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message))
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("unauthorized"))
}

// requireActor pulls the authenticated actor out of JWT claims. A nil
// error from the middleware but broken claims still ends the request.
func requireActor(c *fiber.Ctx) (authz.Actor, bool) {
	actor, err := tenant.GetActor(c)
	if err != nil {
		return authz.Actor{}, false
	}
	return actor, true
}

// companyScope resolves the company every fleet query is pinned to. A
// master admin operates on a chosen company via the company_id query
// parameter; everyone else is locked to their own.
func companyScope(c *fiber.Ctx, actor authz.Actor) (uuid.UUID, error) {
	if actor.Role == authz.RoleMasterAdmin {
		raw := c.Query("company_id")
		if raw == "" {
			return uuid.Nil, errors.New("company_id query parameter is required")
		}
		return uuid.Parse(raw)
	}
	if actor.CompanyID == nil {
		return uuid.Nil, errors.New("account has no company")
	}
	return *actor.CompanyID, nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// optionalQueryUUID parses an optional UUID query parameter, nil when
// absent.
func optionalQueryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("limit"), c.QueryInt("offset")
}
