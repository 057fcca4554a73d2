package admintoken

import (
	"crypto/subtle"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// New returns a Fiber middleware that compares the X-Admin-Token header
// against the configured token. An empty token locks the admin routes unless
// allowInsecure was set explicitly.
func New(token string, allowInsecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			if allowInsecure {
				return c.Next()
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "Unauthorized",
			})
		}
		got := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
