package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/pkg/application"
	"github.com/alumni-labs/bolsa/pkg/profile"
)

// sessionActor reads the authenticated identity the JWT middleware stored in
// the request locals. Returns nil when the request carries no valid session.
func sessionActor(c *fiber.Ctx) *application.Actor {
	rawID, _ := c.Locals("userId").(string)
	if rawID == "" {
		return nil
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}
	role, _ := c.Locals("role").(string)
	email, _ := c.Locals("email").(string)
	return &application.Actor{ID: id, Role: profile.Role(role), Email: email}
}
