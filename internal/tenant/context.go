package tenant

import (
	"errors"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoActor = errors.New("no authenticated actor in context")

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// GetActor builds the authz.Actor for the authenticated caller from JWT
// claims. company_id is absent from master-admin tokens.
func GetActor(c *fiber.Ctx) (authz.Actor, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return authz.Actor{}, err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return authz.Actor{}, errors.New("invalid sub claim")
	}

	role, _ := claims["role"].(string)
	if !authz.Valid(role) {
		return authz.Actor{}, errors.New("invalid role claim")
	}

	actor := authz.Actor{UserID: userID, Role: role}
	if companyStr, ok := claims["company_id"].(string); ok && companyStr != "" {
		companyID, err := uuid.Parse(companyStr)
		if err != nil {
			return authz.Actor{}, errors.New("invalid company_id claim")
		}
		actor.CompanyID = &companyID
	}

	return actor, nil
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoActor
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
