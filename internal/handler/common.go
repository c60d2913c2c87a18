package handler

import (
	"errors"
	"log"

	"go-market-orders/internal/service"
	"go-market-orders/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorID extracts the authenticated principal's id (set by RequireAuth)
func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("no authenticated user in context")
	}
	return uuid.Parse(raw)
}

// respondError maps domain errors to HTTP statuses. Unrecognized errors
// are persistence faults: logged with full context, surfaced generically.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, validator.ErrValidation),
		errors.Is(err, service.ErrSelfTrade),
		errors.Is(err, service.ErrRoleNotAllowed):
		status = 400
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		status = 401
	case errors.Is(err, service.ErrOwnershipViolation):
		status = 403
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		status = 404
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidStateTransition),
		errors.Is(err, service.ErrEmailTaken):
		status = 409
	default:
		log.Printf("internal error: %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
