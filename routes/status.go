package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// GetStatus indica que la API está viva y si la base de datos responde
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	database := true
	if err := h.DB.Ping(c.UserContext()); err != nil {
		slog.Warn("La base de datos no responde", "error", err)
		database = false
	}

	return c.JSON(fiber.Map{
		"active":   true,
		"database": database,
	})
}
