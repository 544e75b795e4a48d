package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// IsAdmin deja pasar solo a usuarios con rol admin
func IsAdmin(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return unauthorized(c, "No autorizado")
	}

	if !identity.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Acceso denegado (solo admin)",
		})
	}

	return c.Next()
}
