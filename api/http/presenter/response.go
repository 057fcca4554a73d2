package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// AdminResponse is the uniform envelope of every admin proxy endpoint.
type AdminResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// AdminOK answers `{ok:true}` merged with extra data fields.
func AdminOK(c *fiber.Ctx, extra fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// AdminFail answers `{ok:false, error}` with the given status.
func AdminFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(AdminResponse{OK: false, Error: message})
}
