package middleware

import (
	"context"
	"errors"
	"log/slog"

	"taskboard-api/db"
	"taskboard-api/models"

	"github.com/gofiber/fiber/v2"
)

const UserKey = "user"

// CurrentUser devuelve la identidad que dejó JWTProtected
func CurrentUser(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(UserKey).(models.Identity)
	return identity, ok
}

type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ValidUser comprueba que el usuario del token sigue existiendo (puede que un
// administrador lo haya borrado). Va siempre después de JWTProtected.
func ValidUser(users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentUser(c)
		if !ok {
			return unauthorized(c, "No autorizado")
		}

		_, err := users.FindByID(c.UserContext(), identity.ID)
		if errors.Is(err, db.ErrNotFound) {
			return unauthorized(c, "El usuario de la sesión ya no existe")
		}
		if err != nil {
			slog.Error("Error al comprobar el usuario de la sesión", "user_id", identity.ID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al comprobar el usuario",
			})
		}

		return c.Next()
	}
}
